package validation

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// OCHP 标识符格式
var (
	EVSEIDPattern     = regexp.MustCompile(`^[A-Z]{2}\*?[A-Z0-9]{3}\*?E[A-Z0-9][A-Z0-9\*]{0,30}$`)
	ParkingIDPattern  = regexp.MustCompile(`^[A-Z]{2}\*?[A-Z0-9]{3}\*?P[A-Z0-9][A-Z0-9\*]{0,30}$`)
	ContractIDPattern = regexp.MustCompile(`^[A-Z]{2}-?[A-Z0-9]{3}-?[A-Z0-9]{9}(-?[A-Z0-9])?$`)
	ProviderIDPattern = regexp.MustCompile(`^[A-Z]{2}[\*-]?[A-Z0-9]{3}$`)
	CDRIDPattern      = regexp.MustCompile(`^[A-Za-z0-9\-_\*]{1,36}$`)
	DirectIDPattern   = regexp.MustCompile(`^[A-Za-z0-9\-_\.\*]{1,255}$`)
	TariffIDPattern   = regexp.MustCompile(`^[A-Za-z0-9\-_]{1,20}$`)
	LanguagePattern   = regexp.MustCompile(`^[a-z]{3}$`)
	CountryPattern    = regexp.MustCompile(`^[A-Z]{3}$`)
)

// Validator OCHP消息验证器
type Validator struct {
	validate *validator.Validate
}

// ValidationError 验证错误
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

// Error 实现error接口
func (e ValidationError) Error() string {
	return e.Message
}

// ValidationErrors 验证错误集合
type ValidationErrors []ValidationError

// Error 实现error接口
func (e ValidationErrors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, err.Message)
	}
	return strings.Join(messages, "; ")
}

var (
	defaultValidator *Validator
	defaultOnce      sync.Once
)

// Default 返回进程内共享的验证器，validator.Validate 会缓存结构体元数据，且并发安全
func Default() *Validator {
	defaultOnce.Do(func() {
		defaultValidator = NewValidator()
	})
	return defaultValidator
}

// NewValidator 创建新的验证器
func NewValidator() *Validator {
	validate := validator.New()

	registerCustomValidations(validate)

	return &Validator{
		validate: validate,
	}
}

// ValidateStruct 验证结构体
func (v *Validator) ValidateStruct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors ValidationErrors

	if validatorErrors, ok := err.(validator.ValidationErrors); ok {
		for _, validatorError := range validatorErrors {
			validationErrors = append(validationErrors, ValidationError{
				Field:   validatorError.Namespace(),
				Tag:     validatorError.Tag(),
				Value:   fmt.Sprintf("%v", validatorError.Value()),
				Message: getErrorMessage(validatorError),
			})
		}
		return validationErrors
	}

	return err
}

// registerCustomValidations 注册OCHP标识符验证规则
func registerCustomValidations(validate *validator.Validate) {
	rules := map[string]*regexp.Regexp{
		"ochp_evse_id":     EVSEIDPattern,
		"ochp_parking_id":  ParkingIDPattern,
		"ochp_contract_id": ContractIDPattern,
		"ochp_provider_id": ProviderIDPattern,
		"ochp_cdr_id":      CDRIDPattern,
		"ochp_direct_id":   DirectIDPattern,
		"ochp_tariff_id":   TariffIDPattern,
		"ochp_lang":        LanguagePattern,
		"ochp_country":     CountryPattern,
	}
	for tag, pattern := range rules {
		_ = validate.RegisterValidation(tag, matchPattern(pattern))
	}
}

// matchPattern 空值交给required处理
func matchPattern(pattern *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		return pattern.MatchString(value)
	}
}

// getErrorMessage 获取友好的错误消息
func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Field '%s' is required", fe.Namespace())
	case "min":
		return fmt.Sprintf("Field '%s' must contain at least %s element(s)", fe.Namespace(), fe.Param())
	case "max":
		return fmt.Sprintf("Field '%s' must not exceed %s", fe.Namespace(), fe.Param())
	case "ochp_evse_id":
		return fmt.Sprintf("Field '%s' must be a valid EVSE Id", fe.Namespace())
	case "ochp_parking_id":
		return fmt.Sprintf("Field '%s' must be a valid parking Id", fe.Namespace())
	case "ochp_contract_id":
		return fmt.Sprintf("Field '%s' must be a valid contract Id", fe.Namespace())
	case "ochp_provider_id":
		return fmt.Sprintf("Field '%s' must be a valid provider Id", fe.Namespace())
	case "ochp_cdr_id":
		return fmt.Sprintf("Field '%s' must be a valid CDR Id", fe.Namespace())
	case "ochp_direct_id":
		return fmt.Sprintf("Field '%s' must be a valid direct Id", fe.Namespace())
	case "ochp_tariff_id":
		return fmt.Sprintf("Field '%s' must be a valid tariff Id", fe.Namespace())
	case "ochp_lang":
		return fmt.Sprintf("Field '%s' must be an ISO 639-3 language code", fe.Namespace())
	case "ochp_country":
		return fmt.Sprintf("Field '%s' must be an ISO 3166 alpha-3 country code", fe.Namespace())
	default:
		return fmt.Sprintf("Field '%s' failed validation for tag '%s'", fe.Namespace(), fe.Tag())
	}
}
