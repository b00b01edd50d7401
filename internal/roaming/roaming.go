package roaming

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charging-platform/ochp-roaming/internal/client"
	"github.com/charging-platform/ochp-roaming/internal/domain/events"
	"github.com/charging-platform/ochp-roaming/internal/domain/ochp"
	"github.com/charging-platform/ochp-roaming/internal/logger"
	"github.com/charging-platform/ochp-roaming/internal/server"
)

// ErrNoDirectClient 未配置 OCHPdirect 对端地址
var ErrNoDirectClient = errors.New("roaming: no OCHPdirect client configured")

// Config 角色配置
type Config struct {
	// Client 清算中心客户端配置
	Client *client.Config
	// Direct OCHPdirect 对端配置，可以为 nil
	Direct *client.Config
	// Server OCHPdirect 服务端配置
	Server *server.Config
}

// forwarding 把内部客户端与服务端的事件转发到同一组观察点
type forwarding struct {
	*events.Lifecycle

	mu      sync.Mutex
	removes []func()
}

func newForwarding() forwarding {
	return forwarding{Lifecycle: events.NewLifecycle()}
}

func (f *forwarding) forward(sources ...*events.Lifecycle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range sources {
		f.removes = append(f.removes, s.Forward(f.Lifecycle))
	}
}

// Detach 断开与内部客户端和服务端的事件转发
func (f *forwarding) Detach() {
	f.mu.Lock()
	removes := f.removes
	f.removes = nil
	f.mu.Unlock()
	for _, remove := range removes {
		remove()
	}
}

// CPORoaming 运营商角色：向清算中心上传数据，并对服务商提供 OCHPdirect 服务
//
// 客户端事件(Role=client)和服务端事件(Role=server)都经由同一个 Lifecycle 暴露。
type CPORoaming struct {
	forwarding
	*client.CPOClient

	Server *server.CPOServer
	Direct *client.DirectClient
}

// NewCPORoaming 组合已有的客户端与服务端，direct 可以为 nil
func NewCPORoaming(c *client.CPOClient, s *server.CPOServer, direct *client.DirectClient) *CPORoaming {
	r := &CPORoaming{forwarding: newForwarding(), CPOClient: c, Server: s, Direct: direct}
	r.forward(c.Lifecycle, s.Lifecycle)
	if direct != nil {
		r.forward(direct.Lifecycle)
	}
	return r
}

// NewCPORoamingFromConfig 按配置创建客户端与服务端
func NewCPORoamingFromConfig(config *Config, operator server.DirectOperator, log *logger.Logger) (*CPORoaming, error) {
	if config == nil {
		return nil, errors.New("roaming: config must not be nil")
	}
	c, err := client.NewCPOClient(config.Client, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create CPO client: %w", err)
	}
	var direct *client.DirectClient
	if config.Direct != nil {
		if direct, err = client.NewDirectClient(config.Direct, log); err != nil {
			return nil, fmt.Errorf("failed to create OCHPdirect client: %w", err)
		}
	}
	return NewCPORoaming(c, server.NewCPOServer(config.Server, operator, log), direct), nil
}

// ForwardStatus 通过 UpdateStatus 上传EVSE状态，ttl 为未单独设置TTL的状态的默认有效期
func (r *CPORoaming) ForwardStatus(ctx context.Context, statuses []ochp.EVSEStatus, ttl *time.Time, opts ...client.CallOption) (*client.Response[ochp.UpdateStatusResponse], error) {
	req, err := ochp.NewUpdateStatusRequest(statuses, nil, ttl)
	if err != nil {
		return nil, err
	}
	return r.UpdateStatus(ctx, req, opts...)
}

// InformProvider 通过 OCHPdirect 向服务商报告会话进展
func (r *CPORoaming) InformProvider(ctx context.Context, req ochp.InformProviderRequest, opts ...client.CallOption) (*client.Response[ochp.InformProviderResponse], error) {
	if r.Direct == nil {
		return nil, ErrNoDirectClient
	}
	return r.Direct.InformProvider(ctx, req, opts...)
}

// EMPRoaming 服务商角色：向清算中心上传授权并下载数据，通过 OCHPdirect 控制运营商的EVSE
type EMPRoaming struct {
	forwarding
	*client.EMPClient

	Server *server.EMPServer
	Direct *client.DirectClient
}

// NewEMPRoaming 组合已有的客户端与服务端，direct 可以为 nil
func NewEMPRoaming(c *client.EMPClient, s *server.EMPServer, direct *client.DirectClient) *EMPRoaming {
	r := &EMPRoaming{forwarding: newForwarding(), EMPClient: c, Server: s, Direct: direct}
	r.forward(c.Lifecycle, s.Lifecycle)
	if direct != nil {
		r.forward(direct.Lifecycle)
	}
	return r
}

// NewEMPRoamingFromConfig 按配置创建客户端与服务端
func NewEMPRoamingFromConfig(config *Config, provider server.DirectProvider, log *logger.Logger) (*EMPRoaming, error) {
	if config == nil {
		return nil, errors.New("roaming: config must not be nil")
	}
	c, err := client.NewEMPClient(config.Client, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create EMP client: %w", err)
	}
	var direct *client.DirectClient
	if config.Direct != nil {
		if direct, err = client.NewDirectClient(config.Direct, log); err != nil {
			return nil, fmt.Errorf("failed to create OCHPdirect client: %w", err)
		}
	}
	return NewEMPRoaming(c, server.NewEMPServer(config.Server, provider, log), direct), nil
}

func (r *EMPRoaming) direct() (*client.DirectClient, error) {
	if r.Direct == nil {
		return nil, ErrNoDirectClient
	}
	return r.Direct, nil
}

// SelectEVSE 预约运营商的EVSE
func (r *EMPRoaming) SelectEVSE(ctx context.Context, req ochp.SelectEVSERequest, opts ...client.CallOption) (*client.Response[ochp.SelectEVSEResponse], error) {
	d, err := r.direct()
	if err != nil {
		return nil, err
	}
	return d.SelectEVSE(ctx, req, opts...)
}

// ControlEVSE 开始、变更或结束会话
func (r *EMPRoaming) ControlEVSE(ctx context.Context, req ochp.ControlEVSERequest, opts ...client.CallOption) (*client.Response[ochp.ControlEVSEResponse], error) {
	d, err := r.direct()
	if err != nil {
		return nil, err
	}
	return d.ControlEVSE(ctx, req, opts...)
}

func (r *EMPRoaming) ReleaseEVSE(ctx context.Context, req ochp.ReleaseEVSERequest, opts ...client.CallOption) (*client.Response[ochp.ReleaseEVSEResponse], error) {
	d, err := r.direct()
	if err != nil {
		return nil, err
	}
	return d.ReleaseEVSE(ctx, req, opts...)
}

func (r *EMPRoaming) GetEVSEStatus(ctx context.Context, req ochp.GetEVSEStatusRequest, opts ...client.CallOption) (*client.Response[ochp.GetEVSEStatusResponse], error) {
	d, err := r.direct()
	if err != nil {
		return nil, err
	}
	return d.GetEVSEStatus(ctx, req, opts...)
}
