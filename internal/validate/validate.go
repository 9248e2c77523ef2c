package validate

import (
	"strconv"
	"strings"
	"unicode"

	"storefront-web/internal/upstream"
)

// AllowedEmailDomains is the fixed allow-list of consumer mail providers
// accepted at registration.
var AllowedEmailDomains = []string{
	"gmail.com",
	"hotmail.com",
	"outlook.com",
	"yahoo.com",
	"icloud.com",
	"live.com",
}

// PasswordSpecials is the special-character set the password rule
// accepts.
const PasswordSpecials = "!@#$%^&*()-_=+.,;:?"

const (
	passwordMinLen = 8
	passwordMaxLen = 16
)

// EmailDomainAllowed reports whether the address has a well-formed shape
// and its domain is on the consumer-provider allow-list.
func EmailDomainAllowed(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	local, domain := email[:at], strings.ToLower(email[at+1:])
	if strings.ContainsAny(local, " \t") || strings.Contains(local, "@") {
		return false
	}
	for _, allowed := range AllowedEmailDomains {
		if domain == allowed {
			return true
		}
	}
	return false
}

// PasswordIssues evaluates each complexity rule independently and
// returns one message per violated rule, empty when the password passes.
func PasswordIssues(password string) []string {
	var issues []string

	if len(password) < passwordMinLen || len(password) > passwordMaxLen {
		issues = append(issues, "La contraseña debe tener entre 8 y 16 caracteres")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(PasswordSpecials, r):
			hasSpecial = true
		}
	}
	if !hasUpper {
		issues = append(issues, "Debe incluir al menos una mayúscula")
	}
	if !hasLower {
		issues = append(issues, "Debe incluir al menos una minúscula")
	}
	if !hasDigit {
		issues = append(issues, "Debe incluir al menos un número")
	}
	if !hasSpecial {
		issues = append(issues, "Debe incluir al menos un símbolo ("+PasswordSpecials+")")
	}
	return issues
}

// RegistrationInput is the raw registration form submission.
type RegistrationInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	Phone           string
	Address         string
}

// Registration validates the form client-side before any network call.
// Every violated rule is surfaced under its own field key; an empty map
// means the submission may proceed. The server remains authoritative.
func Registration(in RegistrationInput) map[string]string {
	errs := make(map[string]string)

	switch {
	case strings.TrimSpace(in.Email) == "":
		errs["email"] = "El email es requerido"
	case !EmailDomainAllowed(strings.TrimSpace(in.Email)):
		errs["email"] = "Usa un correo de un proveedor permitido (" + strings.Join(AllowedEmailDomains, ", ") + ")"
	}

	if in.Password == "" {
		errs["password"] = "La contraseña es requerida"
	} else if issues := PasswordIssues(in.Password); len(issues) > 0 {
		errs["password"] = strings.Join(issues, ". ")
	}

	if in.ConfirmPassword == "" {
		errs["confirm_password"] = "Confirma tu contraseña"
	} else if in.Password != in.ConfirmPassword {
		errs["confirm_password"] = "Las contraseñas no coinciden"
	}

	if strings.TrimSpace(in.FirstName) == "" {
		errs["first_name"] = "El nombre es requerido"
	}
	if strings.TrimSpace(in.LastName) == "" {
		errs["last_name"] = "El apellido es requerido"
	}
	if phone := strings.TrimSpace(in.Phone); phone != "" && len(phone) < 9 {
		errs["phone"] = "Teléfono inválido"
	}

	return errs
}

// ProductForm validates and coerces a product create/edit submission.
// SKU, title, description and category are required; blank price and
// stock default to zero.
func ProductForm(values map[string]string) (upstream.ProductPayload, map[string]string) {
	errs := make(map[string]string)
	var payload upstream.ProductPayload

	payload.SKU = strings.TrimSpace(values["sku"])
	if payload.SKU == "" {
		errs["sku"] = "El SKU es requerido"
	}
	payload.Title = strings.TrimSpace(values["title"])
	if payload.Title == "" {
		errs["title"] = "El título es requerido"
	}
	payload.Description = strings.TrimSpace(values["description"])
	if payload.Description == "" {
		errs["description"] = "La descripción es requerida"
	}

	if raw := strings.TrimSpace(values["price"]); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || price < 0 {
			errs["price"] = "Precio inválido"
		} else {
			payload.Price = price
		}
	}

	if raw := strings.TrimSpace(values["stock_quantity"]); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil || stock < 0 {
			errs["stock_quantity"] = "Stock inválido"
		} else {
			payload.StockQuantity = stock
		}
	}

	if raw := strings.TrimSpace(values["category_id"]); raw == "" {
		errs["category_id"] = "La categoría es requerida"
	} else {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || categoryID <= 0 {
			errs["category_id"] = "Categoría inválida"
		} else {
			payload.CategoryID = categoryID
		}
	}

	return payload, errs
}
