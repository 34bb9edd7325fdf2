package metaclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/creative-audit-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/creative-audit-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	campaignFields = "id,name,status,objective"
	adSetFields    = "id,name,status,campaign_id"
	adFields       = "id,name,status,campaign_id,adset_id,campaign{objective},creative{id,object_type,thumbnail_url,video_id},insights.date_preset(maximum){impressions,clicks,actions}"
)

// Client lê uma página por chamada; after vazio é a primeira página
type Client interface {
	ListCampaigns(ctx context.Context, token, accountID, after string) (*metadomain.Page[metadomain.Campaign], error)
	ListAdSets(ctx context.Context, token, accountID, after string) (*metadomain.Page[metadomain.AdSet], error)
	ListAds(ctx context.Context, token, accountID, after string) (*metadomain.Page[metadomain.Ad], error)
}

type MetaClient struct {
	baseURL    string
	pageSize   int
	httpClient *http.Client
}

func NewClient(cfg config.Meta) *MetaClient {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}

	return &MetaClient{
		baseURL:    cfg.URL,
		pageSize:   pageSize,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *MetaClient) ListCampaigns(ctx context.Context, token, accountID, after string) (*metadomain.Page[metadomain.Campaign], error) {
	page := &metadomain.Page[metadomain.Campaign]{}
	return page, c.getPage(ctx, token, accountID, "campaigns", campaignFields, after, page)
}

func (c *MetaClient) ListAdSets(ctx context.Context, token, accountID, after string) (*metadomain.Page[metadomain.AdSet], error) {
	page := &metadomain.Page[metadomain.AdSet]{}
	return page, c.getPage(ctx, token, accountID, "adsets", adSetFields, after, page)
}

func (c *MetaClient) ListAds(ctx context.Context, token, accountID, after string) (*metadomain.Page[metadomain.Ad], error) {
	page := &metadomain.Page[metadomain.Ad]{}
	return page, c.getPage(ctx, token, accountID, "ads", adFields, after, page)
}

func (c *MetaClient) getPage(ctx context.Context, token, accountID, edge, fields, after string, out interface{}) error {
	params := url.Values{}
	params.Add("fields", fields)
	params.Add("limit", strconv.Itoa(c.pageSize))
	params.Add("access_token", token)
	if after != "" {
		params.Add("after", after)
	}

	endpoint := fmt.Sprintf("%s/act_%s/%s?%s", c.baseURL, accountID, edge, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithFields(logrus.Fields{"edge": edge, "account_id": accountID}).WithError(err).Error("Erro ao fazer a requisição")
		return err
	}
	defer resp.Body.Close()

	body, err := HandleResponse(resp)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("erro ao decodificar %s: %w", edge, err)
	}
	return nil
}

// HandleResponse devolve o corpo em 200 e um *metadomain.APIError nos demais casos
func HandleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode == http.StatusOK {
		return body, nil
	}

	apiErr := &metadomain.APIError{StatusCode: resp.StatusCode, Body: string(body)}

	var errorResp metadomain.ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err == nil {
		apiErr.Details = errorResp.Error
	}

	return nil, apiErr
}
