package clearinghouse

import (
	"errors"

	"github.com/go-redis/redis/v8"

	"github.com/charging-platform/ochp-roaming/internal/domain/ochp"
	"github.com/charging-platform/ochp-roaming/internal/storage"
)

// Stores 清算中心的数据存储，每类数据一个
type Stores struct {
	ChargePoints      storage.Store[ochp.ChargePointInfo]          // 键: EVSE ID
	EVSEStatus        storage.Store[ochp.EVSEStatus]               // 键: EVSE ID
	ParkingStatus     storage.Store[ochp.ParkingStatus]            // 键: 停车位ID
	Tariffs           storage.Store[ochp.TariffInfo]               // 键: 资费ID
	Authorisations    storage.Store[ochp.RoamingAuthorisationInfo] // 键: EMTID.Key()
	CDRs              storage.Store[ochp.CDRInfo]                  // 键: 详单ID
	ProviderEndpoints storage.Store[ochp.ProviderEndpoint]         // 键: 服务商ID
	OperatorEndpoints storage.Store[ochp.OperatorEndpoint]         // 键: 运营商ID
}

// NewMemoryStores 创建进程内存储
func NewMemoryStores() *Stores {
	return &Stores{
		ChargePoints:      storage.NewMemoryStore[ochp.ChargePointInfo]("charge_points"),
		EVSEStatus:        storage.NewMemoryStore[ochp.EVSEStatus]("evse_status"),
		ParkingStatus:     storage.NewMemoryStore[ochp.ParkingStatus]("parking_status"),
		Tariffs:           storage.NewMemoryStore[ochp.TariffInfo]("tariffs"),
		Authorisations:    storage.NewMemoryStore[ochp.RoamingAuthorisationInfo]("authorisations"),
		CDRs:              storage.NewMemoryStore[ochp.CDRInfo]("cdrs"),
		ProviderEndpoints: storage.NewMemoryStore[ochp.ProviderEndpoint]("provider_endpoints"),
		OperatorEndpoints: storage.NewMemoryStore[ochp.OperatorEndpoint]("operator_endpoints"),
	}
}

// NewRedisStores 创建共享同一个 Redis 客户端的存储
func NewRedisStores(client *redis.Client, prefix string) *Stores {
	return &Stores{
		ChargePoints:      storage.NewRedisStore[ochp.ChargePointInfo](client, prefix, "charge_points"),
		EVSEStatus:        storage.NewRedisStore[ochp.EVSEStatus](client, prefix, "evse_status"),
		ParkingStatus:     storage.NewRedisStore[ochp.ParkingStatus](client, prefix, "parking_status"),
		Tariffs:           storage.NewRedisStore[ochp.TariffInfo](client, prefix, "tariffs"),
		Authorisations:    storage.NewRedisStore[ochp.RoamingAuthorisationInfo](client, prefix, "authorisations"),
		CDRs:              storage.NewRedisStore[ochp.CDRInfo](client, prefix, "cdrs"),
		ProviderEndpoints: storage.NewRedisStore[ochp.ProviderEndpoint](client, prefix, "provider_endpoints"),
		OperatorEndpoints: storage.NewRedisStore[ochp.OperatorEndpoint](client, prefix, "operator_endpoints"),
	}
}

// Close 关闭全部存储
//
// Redis 存储共享客户端，重复关闭返回的 redis.ErrClosed 被忽略。
func (s *Stores) Close() error {
	var errs []error
	for _, c := range []interface{ Close() error }{
		s.ChargePoints, s.EVSEStatus, s.ParkingStatus, s.Tariffs,
		s.Authorisations, s.CDRs, s.ProviderEndpoints, s.OperatorEndpoints,
	} {
		if err := c.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func values[V any](records []storage.Record[V]) []V {
	if len(records) == 0 {
		return nil
	}
	out := make([]V, len(records))
	for i, r := range records {
		out[i] = r.Value
	}
	return out
}
