package meta

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/creative-audit-api/infrastructure/database/postgres"
	metadomain "github.com/vfg2006/creative-audit-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/creative-audit-api/internal/domain"
)

type fakeClient struct {
	campaigns []*metadomain.Page[metadomain.Campaign]
	adSets    []*metadomain.Page[metadomain.AdSet]
	ads       []*metadomain.Page[metadomain.Ad]
	adsErr    error
	afters    []string
}

func pageIndex(after string) int {
	if after == "" {
		return 0
	}
	return int(after[len(after)-1] - '0')
}

func (f *fakeClient) ListCampaigns(_ context.Context, _, _, after string) (*metadomain.Page[metadomain.Campaign], error) {
	f.afters = append(f.afters, "campaigns:"+after)
	return f.campaigns[pageIndex(after)], nil
}

func (f *fakeClient) ListAdSets(_ context.Context, _, _, after string) (*metadomain.Page[metadomain.AdSet], error) {
	return f.adSets[pageIndex(after)], nil
}

func (f *fakeClient) ListAds(_ context.Context, _, _, after string) (*metadomain.Page[metadomain.Ad], error) {
	if f.adsErr != nil {
		return nil, f.adsErr
	}
	return f.ads[pageIndex(after)], nil
}

type fakeIntegrations struct {
	integration *domain.Integration
	statuses    []domain.IntegrationStatus
	synced      bool
}

func (f *fakeIntegrations) GetIntegration(context.Context, string) (*domain.Integration, error) {
	return f.integration, nil
}

func (f *fakeIntegrations) UpdateStatus(_ context.Context, _ string, status domain.IntegrationStatus) error {
	f.statuses = append(f.statuses, status)
	return nil
}

func (f *fakeIntegrations) MarkSynced(context.Context, string, time.Time) error {
	f.synced = true
	return nil
}

// fakeMirror devolve "int-<external_id>" como ID interno
type fakeMirror struct {
	creatives []*domain.Creative
}

func (f *fakeMirror) UpsertCampaigns(_ context.Context, _ postgres.Queryer, campaigns []*domain.Campaign) (map[string]string, error) {
	ids := make(map[string]string)
	for _, c := range campaigns {
		ids[c.ExternalID] = "int-" + c.ExternalID
	}
	return ids, nil
}

func (f *fakeMirror) UpsertAdSets(_ context.Context, _ postgres.Queryer, adSets []*domain.AdSet) (map[string]string, error) {
	ids := make(map[string]string)
	for _, a := range adSets {
		ids[a.ExternalID] = "int-" + a.ExternalID
	}
	return ids, nil
}

func (f *fakeMirror) UpsertCreatives(_ context.Context, _ postgres.Queryer, creatives []*domain.Creative) (map[string]string, error) {
	ids := make(map[string]string)
	for _, c := range creatives {
		ids[c.ExternalID] = "int-" + c.ExternalID
		f.creatives = append(f.creatives, c)
	}
	return ids, nil
}

func next(after string) metadomain.Paging {
	return metadomain.Paging{Cursors: metadomain.Cursors{After: after}, Next: "https://graph/next"}
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		campaigns: []*metadomain.Page[metadomain.Campaign]{
			{Data: []metadomain.Campaign{{ID: "c1", Name: "Verão"}}, Paging: next("p1")},
			{Data: []metadomain.Campaign{{ID: "c2", Name: "Inverno"}}},
		},
		adSets: []*metadomain.Page[metadomain.AdSet]{
			{Data: []metadomain.AdSet{{ID: "s1", CampaignID: "c1"}, {ID: "s2", CampaignID: "c2"}, {ID: "s3", CampaignID: "desconhecida"}}},
		},
		ads: []*metadomain.Page[metadomain.Ad]{
			{Data: []metadomain.Ad{
				{ID: "a1", CampaignID: "c1", AdSetID: "s1", Creative: metadomain.AdCreative{VideoID: "v1", ThumbnailURL: "https://img/a1"}},
				{ID: "a2", CampaignID: "c2", AdSetID: "s2", Creative: metadomain.AdCreative{ObjectType: "SHARE"}},
				{ID: "a3", CampaignID: "c2", AdSetID: "s3"},
			}},
		},
	}
}

func metaIntegration() *domain.Integration {
	return &domain.Integration{ID: "I1", Platform: domain.IntegrationPlatformMeta, ExternalAccountID: "123", AccessToken: "tok"}
}

func TestSyncer_SyncIntegration(t *testing.T) {
	tests := []struct {
		name     string
		client   *fakeClient
		validate func(t *testing.T, result domain.SyncResult, integrations *fakeIntegrations, mirror *fakeMirror)
	}{
		{
			name:   "Sincronização completa - pagina e espelha tudo",
			client: newFakeClient(),
			validate: func(t *testing.T, result domain.SyncResult, integrations *fakeIntegrations, mirror *fakeMirror) {
				require.Nil(t, result.Err)
				assert.Equal(t, domain.SyncCounts{Campaigns: 2, AdSets: 2, Creatives: 2}, result.Counts)
				assert.True(t, integrations.synced)
				assert.Empty(t, integrations.statuses)

				require.Len(t, mirror.creatives, 2)
				assert.Equal(t, "int-c1", mirror.creatives[0].CampaignID)
				assert.Equal(t, "int-s1", mirror.creatives[0].AdSetID)
				assert.Equal(t, domain.CreativeFormatVideo, mirror.creatives[0].Format)
				require.NotNil(t, mirror.creatives[0].ThumbnailURL)
				assert.Equal(t, domain.CreativeFormatImage, mirror.creatives[1].Format)
				assert.Nil(t, mirror.creatives[1].ThumbnailURL)
			},
		},
		{
			name: "Limite de taxa nos anúncios - parcial com contagens preservadas",
			client: func() *fakeClient {
				c := newFakeClient()
				c.adsErr = &metadomain.APIError{StatusCode: http.StatusBadRequest, Details: metadomain.ErrorDetails{Code: 17}}
				return c
			}(),
			validate: func(t *testing.T, result domain.SyncResult, integrations *fakeIntegrations, _ *fakeMirror) {
				require.NotNil(t, result.Err)
				assert.Equal(t, domain.SyncErrorRateLimited, result.Err.Kind)
				assert.True(t, result.Err.Resumable())
				assert.Equal(t, domain.SyncCounts{Campaigns: 2, AdSets: 2}, result.Counts)
				assert.False(t, integrations.synced)
				assert.Empty(t, integrations.statuses)
			},
		},
		{
			name: "Token expirado - pede reconexão",
			client: func() *fakeClient {
				c := newFakeClient()
				c.adsErr = &metadomain.APIError{StatusCode: http.StatusBadRequest, Details: metadomain.ErrorDetails{Code: 190}}
				return c
			}(),
			validate: func(t *testing.T, result domain.SyncResult, integrations *fakeIntegrations, _ *fakeMirror) {
				require.NotNil(t, result.Err)
				assert.Equal(t, domain.SyncErrorUnauthorized, result.Err.Kind)
				assert.Equal(t, []domain.IntegrationStatus{domain.IntegrationStatusReauthRequired}, integrations.statuses)
			},
		},
		{
			name: "Erro de rede - desconhecido",
			client: func() *fakeClient {
				c := newFakeClient()
				c.adsErr = errors.New("connection reset")
				return c
			}(),
			validate: func(t *testing.T, result domain.SyncResult, integrations *fakeIntegrations, _ *fakeMirror) {
				require.NotNil(t, result.Err)
				assert.Equal(t, domain.SyncErrorUnknown, result.Err.Kind)
				assert.Equal(t, []domain.IntegrationStatus{domain.IntegrationStatusError}, integrations.statuses)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			integrations := &fakeIntegrations{integration: metaIntegration()}
			mirror := &fakeMirror{}
			syncer := NewSyncer(tt.client, integrations, mirror, mirror)

			result := syncer.SyncIntegration(context.Background(), "I1")
			tt.validate(t, result, integrations, mirror)
		})
	}
}

func TestSyncer_SyncIntegration_UnsupportedPlatform(t *testing.T) {
	integration := metaIntegration()
	integration.Platform = domain.IntegrationPlatformGoogle

	syncer := NewSyncer(newFakeClient(), &fakeIntegrations{integration: integration}, &fakeMirror{}, &fakeMirror{})
	result := syncer.SyncIntegration(context.Background(), "I1")

	require.NotNil(t, result.Err)
	assert.Equal(t, domain.SyncErrorUnknown, result.Err.Kind)
	assert.True(t, result.Counts.IsZero())
}

func TestClassify(t *testing.T) {
	assert.Equal(t, domain.SyncErrorUnauthorized, Classify(&metadomain.APIError{StatusCode: http.StatusUnauthorized}))
	assert.Equal(t, domain.SyncErrorRateLimited, Classify(&metadomain.APIError{StatusCode: http.StatusTooManyRequests}))
	assert.Equal(t, domain.SyncErrorRateLimited, Classify(&metadomain.APIError{Details: metadomain.ErrorDetails{Code: 80004}}))
	assert.Equal(t, domain.SyncErrorUnauthorized, Classify(errors.Join(errors.New("wrap"), &metadomain.APIError{Details: metadomain.ErrorDetails{Code: 190}})))
	assert.Equal(t, domain.SyncErrorUnknown, Classify(context.Canceled))
}

func TestCreativeFormat(t *testing.T) {
	assert.Equal(t, domain.CreativeFormatVideo, creativeFormat(metadomain.AdCreative{ObjectType: "VIDEO"}))
	assert.Equal(t, domain.CreativeFormatCarousel, creativeFormat(metadomain.AdCreative{ObjectType: "CAROUSEL_IMAGE"}))
	assert.Equal(t, domain.CreativeFormatImage, creativeFormat(metadomain.AdCreative{ObjectType: "PHOTO"}))
}
