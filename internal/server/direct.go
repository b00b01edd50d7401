package server

import (
	"context"

	"github.com/charging-platform/ochp-roaming/internal/domain/ochp"
	"github.com/charging-platform/ochp-roaming/internal/logger"
	"github.com/charging-platform/ochp-roaming/internal/soap"
)

// Config OCHPdirect 服务端配置
type Config struct {
	// Path 服务路径，默认为 ochp.DirectServicePath
	Path         string
	Source       string
	MaxBodyBytes int64
}

func (c *Config) soapConfig(defaultSource string) *soap.ServerConfig {
	cfg := soap.DefaultServerConfig()
	cfg.Source = defaultSource
	if c == nil {
		return cfg
	}
	if c.Source != "" {
		cfg.Source = c.Source
	}
	if c.MaxBodyBytes > 0 {
		cfg.MaxBodyBytes = c.MaxBodyBytes
	}
	return cfg
}

func (c *Config) path() string {
	if c == nil || c.Path == "" {
		return ochp.DirectServicePath
	}
	return c.Path
}

// DirectOperator 运营商对服务商开放的 OCHPdirect 操作
type DirectOperator interface {
	SelectEVSE(ctx context.Context, req ochp.SelectEVSERequest) (ochp.SelectEVSEResponse, error)
	ControlEVSE(ctx context.Context, req ochp.ControlEVSERequest) (ochp.ControlEVSEResponse, error)
	ReleaseEVSE(ctx context.Context, req ochp.ReleaseEVSERequest) (ochp.ReleaseEVSEResponse, error)
	GetEVSEStatus(ctx context.Context, req ochp.GetEVSEStatusRequest) (ochp.GetEVSEStatusResponse, error)
}

// DirectProvider 服务商对运营商开放的 OCHPdirect 操作
type DirectProvider interface {
	InformProvider(ctx context.Context, req ochp.InformProviderRequest) (ochp.InformProviderResponse, error)
}

// CPOServer 运营商侧 OCHPdirect 服务端
type CPOServer struct {
	*Endpoint
}

// NewCPOServer 创建运营商服务端，operator 处理服务商发起的会话控制
func NewCPOServer(config *Config, operator DirectOperator, log *logger.Logger) *CPOServer {
	soapServer := soap.NewServer(config.soapConfig("cpo-server"), log)
	e := NewEndpoint(soapServer, config.path(), soapServer.Source(), log)

	Register(e, ochp.ActionSelectEVSE, ochp.ParseSelectEVSERequest, operator.SelectEVSE)
	Register(e, ochp.ActionControlEVSE, ochp.ParseControlEVSERequest, operator.ControlEVSE)
	Register(e, ochp.ActionReleaseEVSE, ochp.ParseReleaseEVSERequest, operator.ReleaseEVSE)
	Register(e, ochp.ActionGetEVSEStatus, ochp.ParseGetEVSEStatusRequest, operator.GetEVSEStatus)

	return &CPOServer{Endpoint: e}
}

// EMPServer 服务商侧 OCHPdirect 服务端
type EMPServer struct {
	*Endpoint
}

// NewEMPServer 创建服务商服务端
func NewEMPServer(config *Config, provider DirectProvider, log *logger.Logger) *EMPServer {
	soapServer := soap.NewServer(config.soapConfig("emp-server"), log)
	e := NewEndpoint(soapServer, config.path(), soapServer.Source(), log)

	Register(e, ochp.ActionInformProvider, ochp.ParseInformProviderRequest, provider.InformProvider)

	return &EMPServer{Endpoint: e}
}
