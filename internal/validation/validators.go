// aqarat-crm/internal/validation/validators.go

// Package validation реализует проверки форм: форматы полей и перекрестные
// правила. Ошибки возвращаются по полям, чтобы форма могла показать
// сообщение рядом с каждым полем.
package validation

import (
	"math"
	"regexp"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	// Международный формат телефона: необязательный "+", от 10 до 15 цифр.
	phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	// Номер удостоверения: ровно 14 цифр.
	nationalIDPattern = regexp.MustCompile(`^[0-9]{14}$`)
)

// FieldErrors — ошибки валидации по именам полей.
type FieldErrors map[string]string

// HasErrors сообщает, есть ли хотя бы одна ошибка.
func (fe FieldErrors) HasErrors() bool { return len(fe) > 0 }

// RegisterCustomValidators добавляет наши проверки в движок binding-а gin.
// Вызывается один раз при старте сервера.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("intl_phone", func(fl validator.FieldLevel) bool {
			return ValidPhone(fl.Field().String())
		})
		v.RegisterValidation("natid", func(fl validator.FieldLevel) bool {
			return ValidNationalID(fl.Field().String())
		})
	}
}

// ValidPhone проверяет телефон в международном формате.
// Короткие и искаженные строки отклоняются.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// ValidNationalID проверяет 14-значный числовой номер удостоверения.
// Все, что короче или содержит нецифровые символы, отклоняется.
func ValidNationalID(id string) bool {
	return nationalIDPattern.MatchString(id)
}

// CheckCustomer проверяет поля формы покупателя.
func CheckCustomer(phone, nationalID string) FieldErrors {
	errs := FieldErrors{}
	if phone != "" && !ValidPhone(phone) {
		errs["phone"] = "Телефон должен быть в международном формате"
	}
	if !ValidNationalID(nationalID) {
		errs["nationalId"] = "Номер удостоверения должен состоять из 14 цифр"
	}
	return errs
}

// CheckUnit проверяет цену и площадь объекта: отрицательные значения отклоняются.
func CheckUnit(price, area float64) FieldErrors {
	errs := FieldErrors{}
	if price < 0 {
		errs["price"] = "Цена не может быть отрицательной"
	}
	if area < 0 {
		errs["area"] = "Площадь не может быть отрицательной"
	}
	return errs
}

// CheckContract проверяет перекрестные правила договора:
// скидка не больше полной цены, первый взнос не больше полной цены,
// итоговая цена согласована с полной ценой и скидкой.
func CheckContract(totalPrice, discount, finalPrice, downPayment float64) FieldErrors {
	errs := FieldErrors{}
	if totalPrice < 0 {
		errs["totalPrice"] = "Полная цена не может быть отрицательной"
	}
	if discount < 0 {
		errs["discount"] = "Скидка не может быть отрицательной"
	}
	if discount > totalPrice {
		errs["discount"] = "Скидка не может превышать полную цену"
	}
	// Первый взнос сверяется с полной ценой договора
	if downPayment < 0 {
		errs["downPayment"] = "Первый взнос не может быть отрицательным"
	} else if downPayment > totalPrice {
		errs["downPayment"] = "Первый взнос не может превышать полную цену"
	}
	if math.Abs(finalPrice-(totalPrice-discount)) > 0.01 {
		errs["finalPrice"] = "Итоговая цена должна равняться полной цене за вычетом скидки"
	}
	return errs
}

// CheckTransfer отклоняет перевод кассы самой себе и нулевые суммы.
func CheckTransfer(fromSafeID, toSafeID uint, amount float64) FieldErrors {
	errs := FieldErrors{}
	if fromSafeID == toSafeID {
		errs["toSafeId"] = "Кассы отправителя и получателя должны различаться"
	}
	if amount <= 0 {
		errs["amount"] = "Сумма перевода должна быть положительной"
	}
	return errs
}

// CheckDateRange проверяет необязательный период: обе даты могут
// отсутствовать, но если заданы обе, начало не позже конца.
func CheckDateRange(start, end *time.Time) FieldErrors {
	errs := FieldErrors{}
	if start != nil && end != nil && start.After(*end) {
		errs["startDate"] = "Дата начала не может быть позже даты окончания"
	}
	return errs
}
