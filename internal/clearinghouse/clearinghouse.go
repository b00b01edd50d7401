package clearinghouse

import (
	"strconv"
	"sync"
	"time"

	"github.com/charging-platform/ochp-roaming/internal/domain/events"
	"github.com/charging-platform/ochp-roaming/internal/domain/ochp"
	"github.com/charging-platform/ochp-roaming/internal/domain/validation"
	"github.com/charging-platform/ochp-roaming/internal/logger"
	"github.com/charging-platform/ochp-roaming/internal/metrics"
	"github.com/charging-platform/ochp-roaming/internal/server"
	"github.com/charging-platform/ochp-roaming/internal/soap"
)

// EventPublisher 发布清算中心数据变更事件，message.KafkaProducer 实现该接口
type EventPublisher interface {
	PublishEvent(event events.Event) error
}

// Config 清算中心配置
type Config struct {
	Path         string // 默认为 ochp.ServicePath
	Source       string
	MaxBodyBytes int64
	// Now 时钟，测试中可替换
	Now func() time.Time
}

// DefaultConfig 默认配置
func DefaultConfig() *Config {
	return &Config{
		Path:         ochp.ServicePath,
		Source:       "clearing-house",
		MaxBodyBytes: soap.DefaultServerConfig().MaxBodyBytes,
		Now:          time.Now,
	}
}

// ClearingHouse 在CPO与EMP之间中转数据的清算中心
type ClearingHouse struct {
	*server.Endpoint

	stores    *Stores
	publisher EventPublisher
	factory   *events.EventFactory
	now       func() time.Time
	log       *logger.Logger

	// 详单的查重与确认需要读后写
	cdrMu sync.Mutex
}

// New 创建清算中心并注册全部非OCHPdirect操作，publisher 可以为 nil
func New(config *Config, stores *Stores, publisher EventPublisher, log *logger.Logger) *ClearingHouse {
	defaults := DefaultConfig()
	if config == nil {
		config = defaults
	}
	path := config.Path
	if path == "" {
		path = defaults.Path
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}

	soapConfig := soap.DefaultServerConfig()
	soapConfig.Source = defaults.Source
	if config.Source != "" {
		soapConfig.Source = config.Source
	}
	if config.MaxBodyBytes > 0 {
		soapConfig.MaxBodyBytes = config.MaxBodyBytes
	}

	log = logger.OrNop(log).With("component", "clearing-house")
	soapServer := soap.NewServer(soapConfig, log)

	ch := &ClearingHouse{
		Endpoint:  server.NewEndpoint(soapServer, path, soapServer.Source(), log),
		stores:    stores,
		publisher: publisher,
		factory:   events.NewEventFactory(soapServer.Source(), events.RoleServer),
		now:       now,
		log:       log,
	}
	ch.registerOperatorActions()
	ch.registerProviderActions()
	return ch
}

// Stores 清算中心使用的存储
func (ch *ClearingHouse) Stores() *Stores {
	return ch.stores
}

func (ch *ClearingHouse) registerOperatorActions() {
	e := ch.Endpoint
	server.Register(e, ochp.ActionSetChargePointList, ochp.ParseSetChargePointListRequest, ch.SetChargePointList)
	server.Register(e, ochp.ActionUpdateChargePointList, ochp.ParseUpdateChargePointListRequest, ch.UpdateChargePointList)
	server.Register(e, ochp.ActionUpdateStatus, ochp.ParseUpdateStatusRequest, ch.UpdateStatus)
	server.Register(e, ochp.ActionUpdateTariffs, ochp.ParseUpdateTariffsRequest, ch.UpdateTariffs)
	server.Register(e, ochp.ActionGetSingleRoamingAuthorisation, ochp.ParseGetSingleRoamingAuthorisationRequest, ch.GetSingleRoamingAuthorisation)
	server.Register(e, ochp.ActionGetRoamingAuthorisationList, ochp.ParseGetRoamingAuthorisationListRequest, ch.GetRoamingAuthorisationList)
	server.Register(e, ochp.ActionGetRoamingAuthorisationListUpdates, ochp.ParseGetRoamingAuthorisationListUpdatesRequest, ch.GetRoamingAuthorisationListUpdates)
	server.Register(e, ochp.ActionAddCDRs, ochp.ParseAddCDRsRequest, ch.AddCDRs)
	server.Register(e, ochp.ActionCheckCDRs, ochp.ParseCheckCDRsRequest, ch.CheckCDRs)
	server.Register(e, ochp.ActionAddServiceEndpoints, ochp.ParseAddServiceEndpointsRequest, ch.AddServiceEndpoints)
	server.Register(e, ochp.ActionGetServiceEndpoints, ochp.ParseGetServiceEndpointsRequest, ch.GetServiceEndpoints)
}

func (ch *ClearingHouse) registerProviderActions() {
	e := ch.Endpoint
	server.Register(e, ochp.ActionSetRoamingAuthorisationList, ochp.ParseSetRoamingAuthorisationListRequest, ch.SetRoamingAuthorisationList)
	server.Register(e, ochp.ActionUpdateRoamingAuthorisationList, ochp.ParseUpdateRoamingAuthorisationListRequest, ch.UpdateRoamingAuthorisationList)
	server.Register(e, ochp.ActionGetChargePointList, ochp.ParseGetChargePointListRequest, ch.GetChargePointList)
	server.Register(e, ochp.ActionGetChargePointListUpdates, ochp.ParseGetChargePointListUpdatesRequest, ch.GetChargePointListUpdates)
	server.Register(e, ochp.ActionGetStatus, ochp.ParseGetStatusRequest, ch.GetStatus)
	server.Register(e, ochp.ActionGetCDRs, ochp.ParseGetCDRsRequest, ch.GetCDRs)
	server.Register(e, ochp.ActionConfirmCDRs, ochp.ParseConfirmCDRsRequest, ch.ConfirmCDRs)
	server.Register(e, ochp.ActionGetTariffUpdates, ochp.ParseGetTariffUpdatesRequest, ch.GetTariffUpdates)
	server.Register(e, ochp.ActionReportDiscrepancy, ochp.ParseReportDiscrepancyRequest, ch.ReportDiscrepancy)
}

// publish 发布数据变更事件，失败只记录日志
func (ch *ClearingHouse) publish(eventType events.EventType, action ochp.Action, keys []string, refused int, data interface{}) {
	if ch.publisher == nil {
		return
	}
	event := ch.factory.CreateClearingHouseEvent(eventType, action, keys, refused, data)
	if err := ch.publisher.PublishEvent(event); err != nil {
		ch.log.WarnWithErr(err, "failed to publish clearing house event")
		return
	}
	metrics.EventsPublished.WithLabelValues(string(eventType)).Inc()
}

// check 校验单条记录
func check(record interface{}) error {
	return validation.Default().ValidateStruct(record)
}

// partly 有被拒绝的条目时返回 Partly
func partly(refused int, what string) ochp.Result {
	if refused == 0 {
		return ochp.OK("")
	}
	return ochp.Partly(pluralize(refused, what) + " refused")
}

func pluralize(n int, what string) string {
	if n == 1 {
		return "1 " + what
	}
	return strconv.Itoa(n) + " " + what + "s"
}

// storeError 存储失败转为 Server 结果，不作为SOAP故障
func (ch *ClearingHouse) storeError(action ochp.Action, err error) ochp.Result {
	ch.log.With("action", action.String()).ErrorWithErr(err, "clearing house store failed")
	return ochp.Server("store unavailable")
}
