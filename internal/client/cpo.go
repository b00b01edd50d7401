package client

import (
	"context"

	"github.com/charging-platform/ochp-roaming/internal/domain/ochp"
	"github.com/charging-platform/ochp-roaming/internal/logger"
)

// CPOClient 运营商访问清算中心的客户端，方法可并发调用
type CPOClient struct {
	*dispatcher
}

// NewCPOClient 创建运营商客户端
func NewCPOClient(config *Config, log *logger.Logger) (*CPOClient, error) {
	d, err := newDispatcher(config, log, "cpo_client")
	if err != nil {
		return nil, err
	}
	return &CPOClient{dispatcher: d}, nil
}

// SetChargePointList 上传完整充电点列表；空列表不发送，直接返回 OK
func (c *CPOClient) SetChargePointList(ctx context.Context, req ochp.SetChargePointListRequest, opts ...CallOption) (*Response[ochp.SetChargePointListResponse], error) {
	return call(ctx, c.dispatcher, req, ochp.ParseSetChargePointListResponse, len(req.ChargePoints) == 0, opts)
}

// UpdateChargePointList 增量上传充电点；空列表不发送，直接返回 OK
func (c *CPOClient) UpdateChargePointList(ctx context.Context, req ochp.UpdateChargePointListRequest, opts ...CallOption) (*Response[ochp.UpdateChargePointListResponse], error) {
	return call(ctx, c.dispatcher, req, ochp.ParseUpdateChargePointListResponse, len(req.ChargePoints) == 0, opts)
}

// UpdateStatus 上传实时状态；没有任何状态时不发送
func (c *CPOClient) UpdateStatus(ctx context.Context, req ochp.UpdateStatusRequest, opts ...CallOption) (*Response[ochp.UpdateStatusResponse], error) {
	return call(ctx, c.dispatcher, req, ochp.ParseUpdateStatusResponse, req.IsEmpty(), opts)
}

// UpdateTariffs 上传资费；空列表不发送
func (c *CPOClient) UpdateTariffs(ctx context.Context, req ochp.UpdateTariffsRequest, opts ...CallOption) (*Response[ochp.UpdateTariffsResponse], error) {
	return call(ctx, c.dispatcher, req, ochp.ParseUpdateTariffsResponse, len(req.Tariffs) == 0, opts)
}

// GetSingleRoamingAuthorisation 查询单个令牌的授权
func (c *CPOClient) GetSingleRoamingAuthorisation(ctx context.Context, req ochp.GetSingleRoamingAuthorisationRequest, opts ...CallOption) (*Response[ochp.GetSingleRoamingAuthorisationResponse], error) {
	return call(ctx, c.dispatcher, req, ochp.ParseGetSingleRoamingAuthorisationResponse, false, opts)
}

func (c *CPOClient) GetRoamingAuthorisationList(ctx context.Context, opts ...CallOption) (*Response[ochp.GetRoamingAuthorisationListResponse], error) {
	return call(ctx, c.dispatcher, ochp.GetRoamingAuthorisationListRequest{}, ochp.ParseGetRoamingAuthorisationListResponse, false, opts)
}

func (c *CPOClient) GetRoamingAuthorisationListUpdates(ctx context.Context, req ochp.GetRoamingAuthorisationListUpdatesRequest, opts ...CallOption) (*Response[ochp.GetRoamingAuthorisationListUpdatesResponse], error) {
	return call(ctx, c.dispatcher, req, ochp.ParseGetRoamingAuthorisationListUpdatesResponse, false, opts)
}

// AddCDRs 上传详单，请求至少包含一条详单
func (c *CPOClient) AddCDRs(ctx context.Context, req ochp.AddCDRsRequest, opts ...CallOption) (*Response[ochp.AddCDRsResponse], error) {
	return call(ctx, c.dispatcher, req, ochp.ParseAddCDRsResponse, false, opts)
}

func (c *CPOClient) CheckCDRs(ctx context.Context, req ochp.CheckCDRsRequest, opts ...CallOption) (*Response[ochp.CheckCDRsResponse], error) {
	return call(ctx, c.dispatcher, req, ochp.ParseCheckCDRsResponse, false, opts)
}

func (c *CPOClient) AddServiceEndpoints(ctx context.Context, req ochp.AddServiceEndpointsRequest, opts ...CallOption) (*Response[ochp.AddServiceEndpointsResponse], error) {
	return call(ctx, c.dispatcher, req, ochp.ParseAddServiceEndpointsResponse, false, opts)
}

func (c *CPOClient) GetServiceEndpoints(ctx context.Context, opts ...CallOption) (*Response[ochp.GetServiceEndpointsResponse], error) {
	return call(ctx, c.dispatcher, ochp.GetServiceEndpointsRequest{}, ochp.ParseGetServiceEndpointsResponse, false, opts)
}
