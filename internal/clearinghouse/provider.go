package clearinghouse

import (
	"context"
	"errors"
	"time"

	"github.com/charging-platform/ochp-roaming/internal/domain/events"
	"github.com/charging-platform/ochp-roaming/internal/domain/ochp"
	"github.com/charging-platform/ochp-roaming/internal/storage"
)

// 服务商(EMP)发起的操作

// SetRoamingAuthorisationList 用上传的授权替换全部授权，空列表清空白名单
func (ch *ClearingHouse) SetRoamingAuthorisationList(ctx context.Context, req ochp.SetRoamingAuthorisationListRequest) (ochp.SetRoamingAuthorisationListResponse, error) {
	now := ch.now()
	records := make([]storage.Record[ochp.RoamingAuthorisationInfo], 0, len(req.Authorisations))
	var refused []ochp.RoamingAuthorisationInfo
	for _, info := range req.Authorisations {
		if err := check(info); err != nil {
			refused = append(refused, info)
			continue
		}
		records = append(records, storage.Record[ochp.RoamingAuthorisationInfo]{Key: info.EMTID.Key(), Value: info, Timestamp: now})
	}

	if err := ch.stores.Authorisations.Replace(ctx, records); err != nil {
		return ochp.NewResponse[ochp.SetRoamingAuthorisationListResponse](ch.storeError(req.Action(), err)), nil
	}
	ch.publish(events.EventTypeAuthorisationsReplaced, req.Action(), recordKeys(records), len(refused), nil)

	return ochp.SetRoamingAuthorisationListResponse{
		Result:                partly(len(refused), "authorisation"),
		RefusedAuthorisations: refused,
	}, nil
}

// UpdateRoamingAuthorisationList 新增或更新授权
func (ch *ClearingHouse) UpdateRoamingAuthorisationList(ctx context.Context, req ochp.UpdateRoamingAuthorisationListRequest) (ochp.UpdateRoamingAuthorisationListResponse, error) {
	now := ch.now()
	var (
		keys    []string
		refused []ochp.RoamingAuthorisationInfo
	)
	for _, info := range req.Authorisations {
		if err := check(info); err != nil {
			refused = append(refused, info)
			continue
		}
		if _, err := ch.stores.Authorisations.Put(ctx, info.EMTID.Key(), info, now); err != nil {
			return ochp.NewResponse[ochp.UpdateRoamingAuthorisationListResponse](ch.storeError(req.Action(), err)), nil
		}
		keys = append(keys, info.EMTID.Key())
	}
	ch.publish(events.EventTypeAuthorisationsUpdated, req.Action(), keys, len(refused), nil)

	return ochp.UpdateRoamingAuthorisationListResponse{
		Result:                partly(len(refused), "authorisation"),
		RefusedAuthorisations: refused,
	}, nil
}

// GetChargePointList 下载全部充电点
func (ch *ClearingHouse) GetChargePointList(ctx context.Context, req ochp.GetChargePointListRequest) (ochp.GetChargePointListResponse, error) {
	records, err := ch.stores.ChargePoints.List(ctx)
	if err != nil {
		return ochp.NewResponse[ochp.GetChargePointListResponse](ch.storeError(req.Action(), err)), nil
	}
	return ochp.GetChargePointListResponse{Result: ochp.OK(""), ChargePoints: values(records)}, nil
}

// GetChargePointListUpdates 下载 LastUpdate 之后变更的充电点
func (ch *ClearingHouse) GetChargePointListUpdates(ctx context.Context, req ochp.GetChargePointListUpdatesRequest) (ochp.GetChargePointListUpdatesResponse, error) {
	records, err := ch.stores.ChargePoints.ListSince(ctx, req.LastUpdate)
	if err != nil {
		return ochp.NewResponse[ochp.GetChargePointListUpdatesResponse](ch.storeError(req.Action(), err)), nil
	}
	return ochp.GetChargePointListUpdatesResponse{Result: ochp.OK(""), ChargePoints: values(records)}, nil
}

// GetStatus 下载实时状态，TTL已过的状态不再返回
func (ch *ClearingHouse) GetStatus(ctx context.Context, req ochp.GetStatusRequest) (ochp.GetStatusResponse, error) {
	var since time.Time
	if req.StartDateTime != nil {
		since = *req.StartDateTime
	}
	now := ch.now()

	evse, err := ch.stores.EVSEStatus.ListSince(ctx, since)
	if err != nil {
		return ochp.NewResponse[ochp.GetStatusResponse](ch.storeError(req.Action(), err)), nil
	}
	parking, err := ch.stores.ParkingStatus.ListSince(ctx, since)
	if err != nil {
		return ochp.NewResponse[ochp.GetStatusResponse](ch.storeError(req.Action(), err)), nil
	}

	resp := ochp.GetStatusResponse{Result: ochp.OK("")}
	for _, r := range evse {
		if live(r.Value.TTL, now) {
			resp.EVSEStatus = append(resp.EVSEStatus, r.Value)
		}
	}
	for _, r := range parking {
		if live(r.Value.TTL, now) {
			resp.ParkingStatus = append(resp.ParkingStatus, r.Value)
		}
	}
	return resp, nil
}

// GetCDRs 服务商下载详单，默认只返回状态为 new 的详单
func (ch *ClearingHouse) GetCDRs(ctx context.Context, req ochp.GetCDRsRequest) (ochp.GetCDRsResponse, error) {
	cdrs, err := ch.cdrsWithStatus(ctx, req.EffectiveStatus())
	if err != nil {
		return ochp.NewResponse[ochp.GetCDRsResponse](ch.storeError(req.Action(), err)), nil
	}
	return ochp.GetCDRsResponse{Result: ochp.OK(""), CDRs: cdrs}, nil
}

// ConfirmCDRs 确认或拒绝详单，未知的详单返回 Partly
func (ch *ClearingHouse) ConfirmCDRs(ctx context.Context, req ochp.ConfirmCDRsRequest) (ochp.ConfirmCDRsResponse, error) {
	ch.cdrMu.Lock()
	defer ch.cdrMu.Unlock()

	now := ch.now()
	var (
		keys    []string
		unknown int
	)
	confirm := func(pairs []ochp.EVSECDRPair, status ochp.CDRStatus) error {
		for _, pair := range pairs {
			record, err := ch.stores.CDRs.Get(ctx, pair.CDRID.String())
			if errors.Is(err, storage.ErrNotFound) || (err == nil && record.Value.EVSEID != pair.EVSEID) {
				unknown++
				continue
			}
			if err != nil {
				return err
			}
			cdr := record.Value
			cdr.Status = status
			if _, err := ch.stores.CDRs.Put(ctx, record.Key, cdr, now); err != nil {
				return err
			}
			keys = append(keys, record.Key)
		}
		return nil
	}
	if err := confirm(req.Approved, ochp.CDRStatusApproved); err != nil {
		return ochp.NewResponse[ochp.ConfirmCDRsResponse](ch.storeError(req.Action(), err)), nil
	}
	if err := confirm(req.Declined, ochp.CDRStatusDeclined); err != nil {
		return ochp.NewResponse[ochp.ConfirmCDRsResponse](ch.storeError(req.Action(), err)), nil
	}
	ch.publish(events.EventTypeCDRsConfirmed, req.Action(), keys, unknown, nil)

	result := ochp.OK("")
	if unknown > 0 {
		result = ochp.Partly(pluralize(unknown, "unknown CDR"))
	}
	return ochp.ConfirmCDRsResponse{Result: result}, nil
}

// GetTariffUpdates 下载资费，LastUpdate 为空时返回全部
func (ch *ClearingHouse) GetTariffUpdates(ctx context.Context, req ochp.GetTariffUpdatesRequest) (ochp.GetTariffUpdatesResponse, error) {
	var since time.Time
	if req.LastUpdate != nil {
		since = *req.LastUpdate
	}
	records, err := ch.stores.Tariffs.ListSince(ctx, since)
	if err != nil {
		return ochp.NewResponse[ochp.GetTariffUpdatesResponse](ch.storeError(req.Action(), err)), nil
	}
	return ochp.GetTariffUpdatesResponse{Result: ochp.OK(""), Tariffs: values(records)}, nil
}

// ReportDiscrepancy 记录EVSE数据不符的报告并转发给运营商的事件订阅者
func (ch *ClearingHouse) ReportDiscrepancy(ctx context.Context, req ochp.ReportDiscrepancyRequest) (ochp.ReportDiscrepancyResponse, error) {
	_, err := ch.stores.ChargePoints.Get(ctx, req.EVSEID.String())
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return ochp.NewResponse[ochp.ReportDiscrepancyResponse](ochp.InvalidID("unknown EVSE id")), nil
	case err != nil:
		return ochp.NewResponse[ochp.ReportDiscrepancyResponse](ch.storeError(req.Action(), err)), nil
	}

	ch.log.With("evse_id", req.EVSEID.String()).Infof("discrepancy reported: %s", req.Report)
	ch.publish(events.EventTypeDiscrepancyReported, req.Action(), []string{req.EVSEID.String()}, 0, req)
	return ochp.ReportDiscrepancyResponse{Result: ochp.OK("")}, nil
}

func live(ttl *time.Time, now time.Time) bool {
	return ttl == nil || ttl.After(now)
}
