package client

import (
	"context"

	"github.com/charging-platform/ochp-roaming/internal/domain/ochp"
	"github.com/charging-platform/ochp-roaming/internal/logger"
)

// EMPClient 服务商访问清算中心的客户端
type EMPClient struct {
	*dispatcher
}

// NewEMPClient 创建服务商客户端
func NewEMPClient(config *Config, log *logger.Logger) (*EMPClient, error) {
	d, err := newDispatcher(config, log, "emp_client")
	if err != nil {
		return nil, err
	}
	return &EMPClient{dispatcher: d}, nil
}

// SetRoamingAuthorisationList 上传完整白名单；空列表会被发送，用于清空清算中心中的白名单
func (c *EMPClient) SetRoamingAuthorisationList(ctx context.Context, req ochp.SetRoamingAuthorisationListRequest, opts ...CallOption) (*Response[ochp.SetRoamingAuthorisationListResponse], error) {
	return call(ctx, c.dispatcher, req, ochp.ParseSetRoamingAuthorisationListResponse, false, opts)
}

// UpdateRoamingAuthorisationList 增量上传白名单；空列表不发送
func (c *EMPClient) UpdateRoamingAuthorisationList(ctx context.Context, req ochp.UpdateRoamingAuthorisationListRequest, opts ...CallOption) (*Response[ochp.UpdateRoamingAuthorisationListResponse], error) {
	return call(ctx, c.dispatcher, req, ochp.ParseUpdateRoamingAuthorisationListResponse, len(req.Authorisations) == 0, opts)
}

func (c *EMPClient) GetChargePointList(ctx context.Context, opts ...CallOption) (*Response[ochp.GetChargePointListResponse], error) {
	return call(ctx, c.dispatcher, ochp.GetChargePointListRequest{}, ochp.ParseGetChargePointListResponse, false, opts)
}

func (c *EMPClient) GetChargePointListUpdates(ctx context.Context, req ochp.GetChargePointListUpdatesRequest, opts ...CallOption) (*Response[ochp.GetChargePointListUpdatesResponse], error) {
	return call(ctx, c.dispatcher, req, ochp.ParseGetChargePointListUpdatesResponse, false, opts)
}

// GetStatus 下载实时状态
func (c *EMPClient) GetStatus(ctx context.Context, req ochp.GetStatusRequest, opts ...CallOption) (*Response[ochp.GetStatusResponse], error) {
	return call(ctx, c.dispatcher, req, ochp.ParseGetStatusResponse, false, opts)
}

// GetCDRs 下载详单，默认只返回状态为 new 的详单
func (c *EMPClient) GetCDRs(ctx context.Context, req ochp.GetCDRsRequest, opts ...CallOption) (*Response[ochp.GetCDRsResponse], error) {
	return call(ctx, c.dispatcher, req, ochp.ParseGetCDRsResponse, false, opts)
}

func (c *EMPClient) ConfirmCDRs(ctx context.Context, req ochp.ConfirmCDRsRequest, opts ...CallOption) (*Response[ochp.ConfirmCDRsResponse], error) {
	return call(ctx, c.dispatcher, req, ochp.ParseConfirmCDRsResponse, false, opts)
}

func (c *EMPClient) GetTariffUpdates(ctx context.Context, req ochp.GetTariffUpdatesRequest, opts ...CallOption) (*Response[ochp.GetTariffUpdatesResponse], error) {
	return call(ctx, c.dispatcher, req, ochp.ParseGetTariffUpdatesResponse, false, opts)
}

func (c *EMPClient) AddServiceEndpoints(ctx context.Context, req ochp.AddServiceEndpointsRequest, opts ...CallOption) (*Response[ochp.AddServiceEndpointsResponse], error) {
	return call(ctx, c.dispatcher, req, ochp.ParseAddServiceEndpointsResponse, false, opts)
}

func (c *EMPClient) GetServiceEndpoints(ctx context.Context, opts ...CallOption) (*Response[ochp.GetServiceEndpointsResponse], error) {
	return call(ctx, c.dispatcher, ochp.GetServiceEndpointsRequest{}, ochp.ParseGetServiceEndpointsResponse, false, opts)
}

// ReportDiscrepancy 报告充电点数据与现场不符
func (c *EMPClient) ReportDiscrepancy(ctx context.Context, req ochp.ReportDiscrepancyRequest, opts ...CallOption) (*Response[ochp.ReportDiscrepancyResponse], error) {
	return call(ctx, c.dispatcher, req, ochp.ParseReportDiscrepancyResponse, false, opts)
}
