package domain

import "time"

type IntegrationPlatform string

const (
	IntegrationPlatformMeta   IntegrationPlatform = "meta"
	IntegrationPlatformGoogle IntegrationPlatform = "google"
)

type IntegrationStatus string

const (
	IntegrationStatusActive         IntegrationStatus = "active"
	IntegrationStatusError          IntegrationStatus = "error"
	IntegrationStatusReauthRequired IntegrationStatus = "reauth_required"
)

// Integration é a conexão com uma conta de anúncios externa
type Integration struct {
	ID                string              `json:"id"`
	Platform          IntegrationPlatform `json:"platform"`
	ExternalAccountID string              `json:"external_account_id"`
	AccountName       string              `json:"account_name"`
	Status            IntegrationStatus   `json:"status"`
	LastSync          *time.Time          `json:"last_sync"`
	AccessToken       string              `json:"-"`
}
