package meta

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/creative-audit-api/infrastructure/database/postgres"
	metadomain "github.com/vfg2006/creative-audit-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/creative-audit-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/creative-audit-api/internal/domain"
	"github.com/vfg2006/creative-audit-api/pkg/utils"
)

// maxPages protege contra um cursor que nunca termina
const maxPages = 500

type IntegrationStore interface {
	GetIntegration(ctx context.Context, id string) (*domain.Integration, error)
	UpdateStatus(ctx context.Context, id string, status domain.IntegrationStatus) error
	MarkSynced(ctx context.Context, id string, at time.Time) error
}

type CampaignStore interface {
	UpsertCampaigns(ctx context.Context, q postgres.Queryer, campaigns []*domain.Campaign) (map[string]string, error)
	UpsertAdSets(ctx context.Context, q postgres.Queryer, adSets []*domain.AdSet) (map[string]string, error)
}

type CreativeStore interface {
	UpsertCreatives(ctx context.Context, q postgres.Queryer, creatives []*domain.Creative) (map[string]string, error)
}

// Syncer espelha campanhas, conjuntos e anúncios de uma conta Meta. É incremental por
// natureza: rodar de novo faz upsert do que já existe, então "continuar" é só chamar outra vez.
type Syncer struct {
	client       metaclient.Client
	integrations IntegrationStore
	campaigns    CampaignStore
	creatives    CreativeStore
	now          func() time.Time
}

func NewSyncer(client metaclient.Client, integrations IntegrationStore, campaigns CampaignStore, creatives CreativeStore) *Syncer {
	return &Syncer{
		client:       client,
		integrations: integrations,
		campaigns:    campaigns,
		creatives:    creatives,
		now:          time.Now,
	}
}

// run carrega o estado de uma execução: contagem e mapas external_id -> id interno
type run struct {
	integration *domain.Integration
	counts      domain.SyncCounts
	campaignIDs map[string]string
	adSetIDs    map[string]string
}

func (s *Syncer) SyncIntegration(ctx context.Context, integrationID string) domain.SyncResult {
	integration, err := s.integrations.GetIntegration(ctx, integrationID)
	if err != nil {
		return domain.SyncFailed(domain.SyncErrorUnknown, "erro ao carregar integração", domain.SyncCounts{}, err)
	}
	if integration == nil {
		return domain.SyncFailed(domain.SyncErrorUnknown, "integração não encontrada", domain.SyncCounts{}, nil)
	}
	if integration.Platform != domain.IntegrationPlatformMeta {
		return domain.SyncFailed(domain.SyncErrorUnknown, fmt.Sprintf("plataforma %s não suportada", integration.Platform), domain.SyncCounts{}, nil)
	}

	logger := logrus.WithFields(logrus.Fields{
		"integration_id": integrationID,
		"account_id":     integration.ExternalAccountID,
	})

	r := &run{
		integration: integration,
		campaignIDs: make(map[string]string),
		adSetIDs:    make(map[string]string),
	}

	startTime := time.Now()

	for _, step := range []func(context.Context, *run) error{s.syncCampaigns, s.syncAdSets, s.syncAds} {
		if err := step(ctx, r); err != nil {
			kind := Classify(err)
			s.markFailure(ctx, integrationID, kind)

			logger.WithFields(logrus.Fields{
				"error_kind": kind,
				"campaigns":  r.counts.Campaigns,
				"ad_sets":    r.counts.AdSets,
				"creatives":  r.counts.Creatives,
			}).WithError(err).Warn("Sincronização Meta interrompida")

			return domain.SyncFailed(kind, failureMessage(kind), r.counts, err)
		}
	}

	if err := s.integrations.MarkSynced(ctx, integrationID, s.now()); err != nil {
		logger.WithError(err).Error("Erro ao registrar fim da sincronização")
	}

	logger.WithFields(logrus.Fields{
		"campaigns": r.counts.Campaigns,
		"ad_sets":   r.counts.AdSets,
		"creatives": r.counts.Creatives,
		"duration":  time.Since(startTime).String(),
	}).Info("Sincronização Meta concluída")

	return domain.SyncSucceeded(r.counts)
}

func (s *Syncer) syncCampaigns(ctx context.Context, r *run) error {
	return paginate(ctx, func(after string) (*metadomain.Paging, error) {
		page, err := s.client.ListCampaigns(ctx, r.integration.AccessToken, r.integration.ExternalAccountID, after)
		if err != nil {
			return nil, err
		}

		now := s.now()
		campaigns := make([]*domain.Campaign, 0, len(page.Data))
		for _, c := range page.Data {
			campaigns = append(campaigns, &domain.Campaign{
				ID:            utils.MustGenerateID(),
				ExternalID:    c.ID,
				IntegrationID: r.integration.ID,
				Name:          c.Name,
				Status:        c.Status,
				Objective:     c.Objective,
				UpdatedAt:     now,
			})
		}

		ids, err := s.campaigns.UpsertCampaigns(ctx, nil, campaigns)
		if err != nil {
			return nil, fmt.Errorf("gravando campanhas: %w", err)
		}
		for externalID, id := range ids {
			r.campaignIDs[externalID] = id
		}
		r.counts.Campaigns += len(ids)

		return &page.Paging, nil
	})
}

func (s *Syncer) syncAdSets(ctx context.Context, r *run) error {
	return paginate(ctx, func(after string) (*metadomain.Paging, error) {
		page, err := s.client.ListAdSets(ctx, r.integration.AccessToken, r.integration.ExternalAccountID, after)
		if err != nil {
			return nil, err
		}

		now := s.now()
		adSets := make([]*domain.AdSet, 0, len(page.Data))
		for _, a := range page.Data {
			campaignID, ok := r.campaignIDs[a.CampaignID]
			if !ok {
				logrus.WithField("ad_set_external_id", a.ID).Debug("Conjunto de campanha não espelhada, ignorado")
				continue
			}
			adSets = append(adSets, &domain.AdSet{
				ID:            utils.MustGenerateID(),
				ExternalID:    a.ID,
				IntegrationID: r.integration.ID,
				CampaignID:    campaignID,
				Name:          a.Name,
				Status:        a.Status,
				UpdatedAt:     now,
			})
		}

		ids, err := s.campaigns.UpsertAdSets(ctx, nil, adSets)
		if err != nil {
			return nil, fmt.Errorf("gravando conjuntos de anúncios: %w", err)
		}
		for externalID, id := range ids {
			r.adSetIDs[externalID] = id
		}
		r.counts.AdSets += len(ids)

		return &page.Paging, nil
	})
}

func (s *Syncer) syncAds(ctx context.Context, r *run) error {
	return paginate(ctx, func(after string) (*metadomain.Paging, error) {
		page, err := s.client.ListAds(ctx, r.integration.AccessToken, r.integration.ExternalAccountID, after)
		if err != nil {
			return nil, err
		}

		now := s.now()
		creatives := make([]*domain.Creative, 0, len(page.Data))
		for i := range page.Data {
			ad := &page.Data[i]
			campaignID, okCampaign := r.campaignIDs[ad.CampaignID]
			adSetID, okAdSet := r.adSetIDs[ad.AdSetID]
			if !okCampaign || !okAdSet {
				logrus.WithField("ad_external_id", ad.ID).Debug("Anúncio de conjunto não espelhado, ignorado")
				continue
			}
			creatives = append(creatives, toCreative(ad, r.integration.ID, campaignID, adSetID, now))
		}

		ids, err := s.creatives.UpsertCreatives(ctx, nil, creatives)
		if err != nil {
			return nil, fmt.Errorf("gravando criativos: %w", err)
		}
		r.counts.Creatives += len(ids)

		return &page.Paging, nil
	})
}

func toCreative(ad *metadomain.Ad, integrationID, campaignID, adSetID string, now time.Time) *domain.Creative {
	creative := &domain.Creative{
		ID:            utils.MustGenerateID(),
		ExternalID:    ad.ID,
		IntegrationID: integrationID,
		CampaignID:    campaignID,
		AdSetID:       adSetID,
		Name:          ad.Name,
		Format:        creativeFormat(ad.Creative),
		Impressions:   ad.Impressions(),
		Clicks:        ad.Clicks(),
		Conversions:   ad.Conversions(),
		UpdatedAt:     now,
	}
	if ad.Creative.ThumbnailURL != "" {
		thumbnail := ad.Creative.ThumbnailURL
		creative.ThumbnailURL = &thumbnail
	}
	return creative
}

func creativeFormat(creative metadomain.AdCreative) domain.CreativeFormat {
	switch {
	case creative.VideoID != "" || strings.EqualFold(creative.ObjectType, "VIDEO"):
		return domain.CreativeFormatVideo
	case strings.Contains(strings.ToUpper(creative.ObjectType), "CAROUSEL"):
		return domain.CreativeFormatCarousel
	default:
		return domain.CreativeFormatImage
	}
}

func paginate(ctx context.Context, fetch func(after string) (*metadomain.Paging, error)) error {
	after := ""
	for page := 0; page < maxPages; page++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		paging, err := fetch(after)
		if err != nil {
			return err
		}
		if paging == nil || !paging.HasNext() {
			return nil
		}
		after = paging.Cursors.After
	}

	return fmt.Errorf("paginação excedeu %d páginas", maxPages)
}

// Classify traduz o erro da Meta para o tipo de falha da sincronização
func Classify(err error) domain.SyncErrorKind {
	var apiErr *metadomain.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.IsTokenExpired():
			return domain.SyncErrorUnauthorized
		case apiErr.IsRateLimited():
			return domain.SyncErrorRateLimited
		}
	}
	return domain.SyncErrorUnknown
}

func failureMessage(kind domain.SyncErrorKind) string {
	switch kind {
	case domain.SyncErrorRateLimited:
		return "limite de chamadas da Meta atingido, continue mais tarde"
	case domain.SyncErrorUnauthorized:
		return "token da integração inválido, reconecte a conta"
	default:
		return "erro inesperado durante a sincronização"
	}
}

// markFailure: Unauthorized exige reconectar; limite de taxa não muda o status
func (s *Syncer) markFailure(ctx context.Context, integrationID string, kind domain.SyncErrorKind) {
	var status domain.IntegrationStatus
	switch kind {
	case domain.SyncErrorUnauthorized:
		status = domain.IntegrationStatusReauthRequired
	case domain.SyncErrorUnknown:
		status = domain.IntegrationStatusError
	default:
		return
	}

	if err := s.integrations.UpdateStatus(ctx, integrationID, status); err != nil {
		logrus.WithField("integration_id", integrationID).WithError(err).Error("Erro ao atualizar status da integração")
	}
}
