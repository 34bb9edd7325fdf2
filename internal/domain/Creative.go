package domain

import (
	"time"

	"github.com/vfg2006/creative-audit-api/pkg/utils"
)

type CreativeFormat string

const (
	CreativeFormatImage    CreativeFormat = "image"
	CreativeFormatVideo    CreativeFormat = "video"
	CreativeFormatCarousel CreativeFormat = "carousel"
)

// Creative é um anúncio espelhado de uma plataforma externa. Só a sincronização escreve nele.
type Creative struct {
	ID            string         `json:"id"`
	ExternalID    string         `json:"external_id"`
	IntegrationID string         `json:"integration_id"`
	CampaignID    string         `json:"campaign_id"`
	AdSetID       string         `json:"ad_set_id"`
	Name          string         `json:"name"`
	Format        CreativeFormat `json:"format"`
	ThumbnailURL  *string        `json:"thumbnail_url"`
	Impressions   int64          `json:"impressions"`
	Clicks        int64          `json:"clicks"`
	Conversions   int64          `json:"conversions"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// CTR retorna a taxa de cliques em porcentagem com duas casas decimais
func (c *Creative) CTR() float64 {
	if c == nil || c.Impressions == 0 {
		return 0
	}

	return utils.RoundWithTwoDecimalPlace(float64(c.Clicks) / float64(c.Impressions) * 100)
}

// DisplayName devolve o nome do criativo ou o ID quando o nome não foi sincronizado
func (c *Creative) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}
