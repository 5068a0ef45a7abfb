package controller

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/linemk/medicines/internal/apiclient"
)

// priceFormInput поля формы создания/обновления до разбора цены.
// Число ли цена, решает strconv.ParseFloat: ".5", "5." и "1e2" допустимы.
type priceFormInput struct {
	Name  string `validate:"required"`
	Price string `validate:"required"`
}

var validate = validator.New()

// parseFormPrice проверяет форму до сетевого вызова.
// Диапазон цены здесь не проверяется, только что это число.
func parseFormPrice(name, rawPrice, missingMsg string) (float64, *apiclient.Error) {
	in := priceFormInput{Name: name, Price: strings.TrimSpace(rawPrice)}

	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.Tag() == "required" {
					return 0, apiclient.NewValidationError(missingMsg)
				}
			}
		}
		return 0, apiclient.NewValidationError(msgPriceNotNum)
	}

	price, err := strconv.ParseFloat(in.Price, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, apiclient.NewValidationError(msgPriceNotNum)
	}
	return price, nil
}

// parsePositivePrice разбор ввода из диалога: число строго больше нуля
func parsePositivePrice(input string) (float64, bool) {
	price, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, false
	}
	return price, true
}
