package client

import (
	"context"

	"github.com/charging-platform/ochp-roaming/internal/domain/ochp"
	"github.com/charging-platform/ochp-roaming/internal/logger"
)

// DirectClient OCHPdirect 点对点客户端，URL 为对端在 GetServiceEndpoints 中登记的地址
//
// 服务商使用 SelectEVSE/ControlEVSE/ReleaseEVSE/GetEVSEStatus 访问运营商，
// 运营商使用 InformProvider 通知服务商。
type DirectClient struct {
	*dispatcher
}

// NewDirectClient 创建 OCHPdirect 客户端
func NewDirectClient(config *Config, log *logger.Logger) (*DirectClient, error) {
	d, err := newDispatcher(config, log, "direct_client")
	if err != nil {
		return nil, err
	}
	return &DirectClient{dispatcher: d}, nil
}

func (c *DirectClient) SelectEVSE(ctx context.Context, req ochp.SelectEVSERequest, opts ...CallOption) (*Response[ochp.SelectEVSEResponse], error) {
	return call(ctx, c.dispatcher, req, ochp.ParseSelectEVSEResponse, false, opts)
}

func (c *DirectClient) ControlEVSE(ctx context.Context, req ochp.ControlEVSERequest, opts ...CallOption) (*Response[ochp.ControlEVSEResponse], error) {
	return call(ctx, c.dispatcher, req, ochp.ParseControlEVSEResponse, false, opts)
}

func (c *DirectClient) ReleaseEVSE(ctx context.Context, req ochp.ReleaseEVSERequest, opts ...CallOption) (*Response[ochp.ReleaseEVSEResponse], error) {
	return call(ctx, c.dispatcher, req, ochp.ParseReleaseEVSEResponse, false, opts)
}

// GetEVSEStatus 查询一个或多个EVSE的实时状态
func (c *DirectClient) GetEVSEStatus(ctx context.Context, req ochp.GetEVSEStatusRequest, opts ...CallOption) (*Response[ochp.GetEVSEStatusResponse], error) {
	return call(ctx, c.dispatcher, req, ochp.ParseGetEVSEStatusResponse, false, opts)
}

// InformProvider 运营商向服务商报告会话进展
func (c *DirectClient) InformProvider(ctx context.Context, req ochp.InformProviderRequest, opts ...CallOption) (*Response[ochp.InformProviderResponse], error) {
	return call(ctx, c.dispatcher, req, ochp.ParseInformProviderResponse, false, opts)
}
