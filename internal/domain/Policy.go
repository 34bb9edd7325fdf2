package domain

import "time"

type PolicyScope string

const (
	PolicyScopeGlobal   PolicyScope = "global"
	PolicyScopeCampaign PolicyScope = "campaign"
)

// Policy é o conjunto de regras de marca e limites de performance usado para pontuar um criativo
type Policy struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	Scope           PolicyScope `json:"scope"`
	CampaignID      *string     `json:"campaign_id"`
	IsDefault       bool        `json:"is_default"`
	BrandGuidelines []string    `json:"brand_guidelines"`
	MinCTR          float64     `json:"min_ctr"`
	MinConversions  int64       `json:"min_conversions"`
	MaxFrequency    float64     `json:"max_frequency"`
	CreatedAt       time.Time   `json:"created_at"`
}

// DefaultPolicy retorna a primeira política marcada como padrão, ou nil
func DefaultPolicy(policies []*Policy) *Policy {
	for _, p := range policies {
		if p != nil && p.IsDefault {
			return p
		}
	}
	return nil
}

// FindPolicy procura uma política pelo ID
func FindPolicy(policies []*Policy, id string) *Policy {
	for _, p := range policies {
		if p != nil && p.ID == id {
			return p
		}
	}
	return nil
}
