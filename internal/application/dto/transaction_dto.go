package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/bibbank/fraudshield/internal/domain/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Compare decimals numerically in gte/lte tags.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	return v
}

// ScoreTransactionRequest is the input DTO for scoring one transaction.
// Pointer fields distinguish a missing field from its zero value.
type ScoreTransactionRequest struct {
	AccountID           *string          `json:"account_id" validate:"required"`
	Amount              *decimal.Decimal `json:"amount" validate:"required,gte=0"`
	Country             *string          `json:"country" validate:"required"`
	TransactionsLast24h *int             `json:"transactions_last_24h" validate:"required,gte=0"`
	IsNewDevice         *bool            `json:"is_new_device" validate:"required"`
}

// Validate checks that every field is present and in range. Failures wrap
// model.ErrInvalidTransaction.
func (r ScoreTransactionRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", model.ErrInvalidTransaction, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be >= %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", model.ErrInvalidTransaction, strings.Join(msgs, "; "))
}

// ToRecord validates the request and converts it to a domain record.
func (r ScoreTransactionRequest) ToRecord() (model.TransactionRecord, error) {
	if err := r.Validate(); err != nil {
		return model.TransactionRecord{}, err
	}
	return model.NewTransactionRecord(*r.AccountID, *r.Amount, *r.Country, *r.TransactionsLast24h, *r.IsNewDevice)
}

// NewScoreTransactionRequest builds a fully populated request.
func NewScoreTransactionRequest(
	accountID string,
	amount decimal.Decimal,
	country string,
	transactionsLast24h int,
	isNewDevice bool,
) ScoreTransactionRequest {
	return ScoreTransactionRequest{
		AccountID:           &accountID,
		Amount:              &amount,
		Country:             &country,
		TransactionsLast24h: &transactionsLast24h,
		IsNewDevice:         &isNewDevice,
	}
}
