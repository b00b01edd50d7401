package clearinghouse

import (
	"context"
	"errors"

	"github.com/charging-platform/ochp-roaming/internal/domain/events"
	"github.com/charging-platform/ochp-roaming/internal/domain/ochp"
	"github.com/charging-platform/ochp-roaming/internal/storage"
)

// 运营商(CPO)发起的操作

// SetChargePointList 用上传的充电点替换全部充电点
func (ch *ClearingHouse) SetChargePointList(ctx context.Context, req ochp.SetChargePointListRequest) (ochp.SetChargePointListResponse, error) {
	now := ch.now()
	records := make([]storage.Record[ochp.ChargePointInfo], 0, len(req.ChargePoints))
	var refused []ochp.ChargePointInfo
	for _, cp := range req.ChargePoints {
		if err := check(cp); err != nil {
			ch.log.With("evse_id", cp.EVSEID.String()).WarnWithErr(err, "refused charge point")
			refused = append(refused, cp)
			continue
		}
		records = append(records, storage.Record[ochp.ChargePointInfo]{Key: cp.EVSEID.String(), Value: cp, Timestamp: now})
	}

	if err := ch.stores.ChargePoints.Replace(ctx, records); err != nil {
		return ochp.NewResponse[ochp.SetChargePointListResponse](ch.storeError(req.Action(), err)), nil
	}
	ch.publish(events.EventTypeChargePointsReplaced, req.Action(), recordKeys(records), len(refused), nil)

	return ochp.SetChargePointListResponse{
		Result:              partly(len(refused), "charge point"),
		RefusedChargePoints: refused,
	}, nil
}

// UpdateChargePointList 新增或更新充电点
func (ch *ClearingHouse) UpdateChargePointList(ctx context.Context, req ochp.UpdateChargePointListRequest) (ochp.UpdateChargePointListResponse, error) {
	now := ch.now()
	var (
		keys    []string
		refused []ochp.ChargePointInfo
	)
	for _, cp := range req.ChargePoints {
		if err := check(cp); err != nil {
			ch.log.With("evse_id", cp.EVSEID.String()).WarnWithErr(err, "refused charge point")
			refused = append(refused, cp)
			continue
		}
		if _, err := ch.stores.ChargePoints.Put(ctx, cp.EVSEID.String(), cp, now); err != nil {
			return ochp.NewResponse[ochp.UpdateChargePointListResponse](ch.storeError(req.Action(), err)), nil
		}
		keys = append(keys, cp.EVSEID.String())
	}
	ch.publish(events.EventTypeChargePointsUpdated, req.Action(), keys, len(refused), nil)

	return ochp.UpdateChargePointListResponse{
		Result:              partly(len(refused), "charge point"),
		RefusedChargePoints: refused,
	}, nil
}

// UpdateStatus 更新EVSE与停车位实时状态，未单独设置TTL的状态使用请求的默认TTL
func (ch *ClearingHouse) UpdateStatus(ctx context.Context, req ochp.UpdateStatusRequest) (ochp.UpdateStatusResponse, error) {
	now := ch.now()
	var (
		keys    []string
		refused int
	)
	for _, status := range req.EVSEStatus {
		if status.TTL == nil {
			status.TTL = req.DefaultTTL
		}
		if err := check(status); err != nil {
			refused++
			continue
		}
		if _, err := ch.stores.EVSEStatus.Put(ctx, status.EVSEID.String(), status, now); err != nil {
			return ochp.NewResponse[ochp.UpdateStatusResponse](ch.storeError(req.Action(), err)), nil
		}
		keys = append(keys, status.EVSEID.String())
	}
	for _, status := range req.ParkingStatus {
		if status.TTL == nil {
			status.TTL = req.DefaultTTL
		}
		if err := check(status); err != nil {
			refused++
			continue
		}
		if _, err := ch.stores.ParkingStatus.Put(ctx, status.ParkingID.String(), status, now); err != nil {
			return ochp.NewResponse[ochp.UpdateStatusResponse](ch.storeError(req.Action(), err)), nil
		}
		keys = append(keys, status.ParkingID.String())
	}
	ch.publish(events.EventTypeStatusUpdated, req.Action(), keys, refused, nil)

	return ochp.UpdateStatusResponse{Result: partly(refused, "status")}, nil
}

// UpdateTariffs 新增或更新资费
func (ch *ClearingHouse) UpdateTariffs(ctx context.Context, req ochp.UpdateTariffsRequest) (ochp.UpdateTariffsResponse, error) {
	now := ch.now()
	var (
		keys    []string
		refused []ochp.TariffInfo
	)
	for _, tariff := range req.Tariffs {
		if err := check(tariff); err != nil {
			refused = append(refused, tariff)
			continue
		}
		if _, err := ch.stores.Tariffs.Put(ctx, tariff.TariffID.String(), tariff, now); err != nil {
			return ochp.NewResponse[ochp.UpdateTariffsResponse](ch.storeError(req.Action(), err)), nil
		}
		keys = append(keys, tariff.TariffID.String())
	}
	ch.publish(events.EventTypeTariffsUpdated, req.Action(), keys, len(refused), nil)

	return ochp.UpdateTariffsResponse{
		Result:         partly(len(refused), "tariff"),
		RefusedTariffs: refused,
	}, nil
}

// GetSingleRoamingAuthorisation 查询单个令牌
//
// 未登记的令牌返回 InvalidId，已过期的返回 NotAuthorized。
func (ch *ClearingHouse) GetSingleRoamingAuthorisation(ctx context.Context, req ochp.GetSingleRoamingAuthorisationRequest) (ochp.GetSingleRoamingAuthorisationResponse, error) {
	record, err := ch.stores.Authorisations.Get(ctx, req.EMTID.Key())
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return ochp.NewResponse[ochp.GetSingleRoamingAuthorisationResponse](ochp.InvalidID("unknown EMT id")), nil
	case err != nil:
		return ochp.NewResponse[ochp.GetSingleRoamingAuthorisationResponse](ch.storeError(req.Action(), err)), nil
	}

	info := record.Value
	if info.IsExpired(ch.now()) {
		return ochp.NewResponse[ochp.GetSingleRoamingAuthorisationResponse](ochp.NotAuthorized("authorisation expired")), nil
	}
	return ochp.GetSingleRoamingAuthorisationResponse{Result: ochp.OK(""), Info: &info}, nil
}

// GetRoamingAuthorisationList 下载全部漫游授权
func (ch *ClearingHouse) GetRoamingAuthorisationList(ctx context.Context, req ochp.GetRoamingAuthorisationListRequest) (ochp.GetRoamingAuthorisationListResponse, error) {
	records, err := ch.stores.Authorisations.List(ctx)
	if err != nil {
		return ochp.NewResponse[ochp.GetRoamingAuthorisationListResponse](ch.storeError(req.Action(), err)), nil
	}
	return ochp.GetRoamingAuthorisationListResponse{Result: ochp.OK(""), Authorisations: values(records)}, nil
}

// GetRoamingAuthorisationListUpdates 下载 LastUpdate 之后变更的漫游授权
func (ch *ClearingHouse) GetRoamingAuthorisationListUpdates(ctx context.Context, req ochp.GetRoamingAuthorisationListUpdatesRequest) (ochp.GetRoamingAuthorisationListUpdatesResponse, error) {
	records, err := ch.stores.Authorisations.ListSince(ctx, req.LastUpdate)
	if err != nil {
		return ochp.NewResponse[ochp.GetRoamingAuthorisationListUpdatesResponse](ch.storeError(req.Action(), err)), nil
	}
	return ochp.GetRoamingAuthorisationListUpdatesResponse{Result: ochp.OK(""), Authorisations: values(records)}, nil
}

// AddCDRs 接收详单，格式错误或标识重复的详单作为不可信详单返回
func (ch *ClearingHouse) AddCDRs(ctx context.Context, req ochp.AddCDRsRequest) (ochp.AddCDRsResponse, error) {
	ch.cdrMu.Lock()
	defer ch.cdrMu.Unlock()

	now := ch.now()
	var (
		keys        []string
		implausible []ochp.CDRInfo
	)
	for _, cdr := range req.CDRs {
		if err := check(cdr); err != nil {
			ch.log.With("cdr_id", cdr.CDRID.String()).WarnWithErr(err, "implausible CDR")
			implausible = append(implausible, cdr)
			continue
		}
		_, err := ch.stores.CDRs.Get(ctx, cdr.CDRID.String())
		switch {
		case err == nil:
			ch.log.With("cdr_id", cdr.CDRID.String()).Warn("duplicate CDR id")
			implausible = append(implausible, cdr)
			continue
		case !errors.Is(err, storage.ErrNotFound):
			return ochp.NewResponse[ochp.AddCDRsResponse](ch.storeError(req.Action(), err)), nil
		}
		if _, err := ch.stores.CDRs.Put(ctx, cdr.CDRID.String(), cdr, now); err != nil {
			return ochp.NewResponse[ochp.AddCDRsResponse](ch.storeError(req.Action(), err)), nil
		}
		keys = append(keys, cdr.CDRID.String())
	}
	ch.publish(events.EventTypeCDRsAdded, req.Action(), keys, len(implausible), nil)

	result := ochp.OK("")
	if len(implausible) > 0 {
		result = ochp.Partly(pluralize(len(implausible), "implausible CDR"))
	}
	return ochp.AddCDRsResponse{Result: result, ImplausibleCDRs: implausible}, nil
}

// CheckCDRs 运营商查询已上传详单，Status 为空时返回全部
func (ch *ClearingHouse) CheckCDRs(ctx context.Context, req ochp.CheckCDRsRequest) (ochp.CheckCDRsResponse, error) {
	cdrs, err := ch.cdrsWithStatus(ctx, req.Status)
	if err != nil {
		return ochp.NewResponse[ochp.CheckCDRsResponse](ch.storeError(req.Action(), err)), nil
	}
	return ochp.CheckCDRsResponse{Result: ochp.OK(""), CDRs: cdrs}, nil
}

// AddServiceEndpoints 登记服务商与运营商的OCHPdirect端点
func (ch *ClearingHouse) AddServiceEndpoints(ctx context.Context, req ochp.AddServiceEndpointsRequest) (ochp.AddServiceEndpointsResponse, error) {
	now := ch.now()
	var (
		keys    []string
		refused int
	)
	for _, p := range req.ProviderEndpoints {
		if err := check(p); err != nil {
			refused++
			continue
		}
		if _, err := ch.stores.ProviderEndpoints.Put(ctx, p.ProviderID.String(), p, now); err != nil {
			return ochp.NewResponse[ochp.AddServiceEndpointsResponse](ch.storeError(req.Action(), err)), nil
		}
		keys = append(keys, p.ProviderID.String())
	}
	for _, o := range req.OperatorEndpoints {
		if err := check(o); err != nil {
			refused++
			continue
		}
		if _, err := ch.stores.OperatorEndpoints.Put(ctx, o.OperatorID, o, now); err != nil {
			return ochp.NewResponse[ochp.AddServiceEndpointsResponse](ch.storeError(req.Action(), err)), nil
		}
		keys = append(keys, o.OperatorID)
	}
	ch.publish(events.EventTypeEndpointsAdded, req.Action(), keys, refused, nil)

	return ochp.AddServiceEndpointsResponse{Result: partly(refused, "endpoint")}, nil
}

// GetServiceEndpoints 下载全部端点
func (ch *ClearingHouse) GetServiceEndpoints(ctx context.Context, req ochp.GetServiceEndpointsRequest) (ochp.GetServiceEndpointsResponse, error) {
	providers, err := ch.stores.ProviderEndpoints.List(ctx)
	if err != nil {
		return ochp.NewResponse[ochp.GetServiceEndpointsResponse](ch.storeError(req.Action(), err)), nil
	}
	operators, err := ch.stores.OperatorEndpoints.List(ctx)
	if err != nil {
		return ochp.NewResponse[ochp.GetServiceEndpointsResponse](ch.storeError(req.Action(), err)), nil
	}
	return ochp.GetServiceEndpointsResponse{
		Result:            ochp.OK(""),
		ProviderEndpoints: values(providers),
		OperatorEndpoints: values(operators),
	}, nil
}

func (ch *ClearingHouse) cdrsWithStatus(ctx context.Context, status ochp.CDRStatus) ([]ochp.CDRInfo, error) {
	records, err := ch.stores.CDRs.List(ctx)
	if err != nil {
		return nil, err
	}
	var cdrs []ochp.CDRInfo
	for _, r := range records {
		if status == "" || r.Value.Status == status {
			cdrs = append(cdrs, r.Value)
		}
	}
	return cdrs, nil
}

func recordKeys[V any](records []storage.Record[V]) []string {
	keys := make([]string, len(records))
	for i, r := range records {
		keys[i] = r.Key
	}
	return keys
}
