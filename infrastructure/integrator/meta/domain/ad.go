package metadomain

import (
	"strconv"

	"github.com/sirupsen/logrus"
)

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next"`
}

// HasNext indica se existe outra página depois desta
func (p Paging) HasNext() bool {
	return p.Next != "" && p.Cursors.After != ""
}

type Page[T any] struct {
	Data   []T    `json:"data"`
	Paging Paging `json:"paging"`
}

type Campaign struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	Objective string `json:"objective"`
}

type AdSet struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	CampaignID string `json:"campaign_id"`
}

type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

type AdCreative struct {
	ID           string `json:"id"`
	ObjectType   string `json:"object_type"`
	ThumbnailURL string `json:"thumbnail_url"`
	VideoID      string `json:"video_id"`
}

type AdInsight struct {
	Impressions string   `json:"impressions"`
	Clicks      string   `json:"clicks"`
	Actions     []Action `json:"actions"`
}

type AdCampaign struct {
	Objective string `json:"objective"`
}

type Ad struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Status     string           `json:"status"`
	CampaignID string           `json:"campaign_id"`
	AdSetID    string           `json:"adset_id"`
	Creative   AdCreative       `json:"creative"`
	Insights   *Page[AdInsight] `json:"insights,omitempty"`
	Campaign   *AdCampaign      `json:"campaign,omitempty"`
}

// Mapeamento de "objective" -> "action_type" que conta como conversão
var MetaObjectiveToActionType = map[string]string{
	"LINK_CLICKS":           "link_click",
	"POST_ENGAGEMENT":       "post_engagement",
	"PAGE_LIKES":            "like",
	"VIDEO_VIEWS":           "video_view",
	"LEAD_GENERATION":       "lead",
	"CONVERSIONS":           "offsite_conversion",
	"APP_INSTALLS":          "app_install",
	"PRODUCT_CATALOG_SALES": "offsite_conversion.fb_pixel_purchase",
	"MESSAGES":              "onsite_conversion.messaging_first_reply",
	"STORE_TRAFFIC":         "store_visit",
	"EVENT_RESPONSES":       "rsvp",
	"ADD_TO_CART":           "offsite_conversion.fb_pixel_add_to_cart",
	"PURCHASE":              "offsite_conversion.fb_pixel_purchase",
	"OUTCOME_SALES":         "offsite_conversion.fb_pixel_purchase",
	"OUTCOME_LEADS":         "lead",
	"OUTCOME_ENGAGEMENT":    "onsite_conversion.messaging_conversation_started_7d",
}

func (a *Ad) insight() *AdInsight {
	if a.Insights == nil || len(a.Insights.Data) == 0 {
		return nil
	}
	return &a.Insights.Data[0]
}

func (a *Ad) Impressions() int64 {
	return parseCount(a.insight(), func(i *AdInsight) string { return i.Impressions })
}

func (a *Ad) Clicks() int64 {
	return parseCount(a.insight(), func(i *AdInsight) string { return i.Clicks })
}

// Conversions soma a ação correspondente ao objetivo da campanha
func (a *Ad) Conversions() int64 {
	insight := a.insight()
	if insight == nil || a.Campaign == nil {
		return 0
	}

	actionType, ok := MetaObjectiveToActionType[a.Campaign.Objective]
	if !ok {
		logrus.WithField("objective", a.Campaign.Objective).Debug("Objetivo sem ação de conversão mapeada")
		return 0
	}

	for _, action := range insight.Actions {
		if action.ActionType == actionType {
			value, err := strconv.ParseFloat(action.Value, 64)
			if err != nil {
				logrus.WithError(err).Warn("Erro ao converter valor da ação")
				return 0
			}
			return int64(value)
		}
	}
	return 0
}

func parseCount(insight *AdInsight, field func(*AdInsight) string) int64 {
	if insight == nil {
		return 0
	}
	raw := field(insight)
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		logrus.WithError(err).WithField("value", raw).Warn("Métrica inválida da Meta")
		return 0
	}
	return value
}
