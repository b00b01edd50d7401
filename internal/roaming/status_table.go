package roaming

import (
	"context"

	"github.com/charging-platform/ochp-roaming/internal/cache"
	"github.com/charging-platform/ochp-roaming/internal/domain/ochp"
	"github.com/charging-platform/ochp-roaming/internal/server"
)

// StatusTable 运营商本地的EVSE实时状态
//
// 带TTL的状态在TTL到期后失效，其余状态使用缓存的默认TTL。
type StatusTable struct {
	statuses *cache.LRU[ochp.EVSEStatus]
}

// NewStatusTable 创建状态表，config 为 nil 时使用默认缓存配置
func NewStatusTable(config *cache.Config) *StatusTable {
	return &StatusTable{statuses: cache.NewLRU[ochp.EVSEStatus](config)}
}

// Start 启动过期清理
func (t *StatusTable) Start() error { return t.statuses.Start() }

func (t *StatusTable) Stop() { t.statuses.Stop() }

// Record 记录最新状态
func (t *StatusTable) Record(status ochp.EVSEStatus) {
	key := status.EVSEID.String()
	if status.TTL != nil {
		t.statuses.SetUntil(key, status, *status.TTL)
		return
	}
	t.statuses.Set(key, status, 0)
}

// Lookup 按请求顺序返回状态，未知或已失效的EVSE返回 unknown
func (t *StatusTable) Lookup(ids ...ochp.EVSEID) []ochp.EVSEStatus {
	out := make([]ochp.EVSEStatus, 0, len(ids))
	for _, id := range ids {
		if s, ok := t.statuses.Get(id.String()); ok {
			out = append(out, s)
			continue
		}
		out = append(out, ochp.EVSEStatus{EVSEID: id, Major: ochp.MajorStatusUnknown})
	}
	return out
}

// Len 已记录的EVSE数量
func (t *StatusTable) Len() int { return t.statuses.Len() }

// StatusOperator 只提供状态查询的 OCHPdirect 运营商实现
//
// 预约与会话控制需要接入充电桩后台，这里一律返回 server.ErrNotSupported。
type StatusOperator struct {
	Table *StatusTable
}

var _ server.DirectOperator = (*StatusOperator)(nil)

func (o *StatusOperator) SelectEVSE(ctx context.Context, req ochp.SelectEVSERequest) (ochp.SelectEVSEResponse, error) {
	return ochp.SelectEVSEResponse{}, server.ErrNotSupported
}

func (o *StatusOperator) ControlEVSE(ctx context.Context, req ochp.ControlEVSERequest) (ochp.ControlEVSEResponse, error) {
	return ochp.ControlEVSEResponse{}, server.ErrNotSupported
}

func (o *StatusOperator) ReleaseEVSE(ctx context.Context, req ochp.ReleaseEVSERequest) (ochp.ReleaseEVSEResponse, error) {
	return ochp.ReleaseEVSEResponse{}, server.ErrNotSupported
}

// GetEVSEStatus 从状态表应答
func (o *StatusOperator) GetEVSEStatus(ctx context.Context, req ochp.GetEVSEStatusRequest) (ochp.GetEVSEStatusResponse, error) {
	return ochp.GetEVSEStatusResponse{Result: ochp.OK(""), Statuses: o.Table.Lookup(req.EVSEIDs...)}, nil
}
