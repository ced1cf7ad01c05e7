package booking

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// Field keys, matching the wire names of the draft.
const (
	FieldFirstName         = "first_name"
	FieldLastName          = "last_name"
	FieldEmail             = "email"
	FieldPhone             = "phone"
	FieldTicketID          = "ticket_id"
	FieldBeverageID        = "beverage_id"
	FieldFoodID            = "food_id"
	FieldTimeslotPriority1 = "timeslot_priority_1"
	FieldTimeslotPriority2 = "timeslot_priority_2"
	FieldTimeslotPriority3 = "timeslot_priority_3"
	FieldMaterialIDs       = "material_ids"
	FieldAmountShifts      = "amount_shifts"
	FieldSupporterBuddy    = "supporter_buddy"
	FieldSignature         = "signature"
)

var (
	namePattern  = regexp.MustCompile(`^[\p{L} ]+$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[A-Za-z]{2,}$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10,15}$`)
)

// FieldValidator maps a field value to an error message. An empty string
// means the value is valid. Validators are pure and never panic on foreign
// input types.
type FieldValidator func(value any) string

// fieldValidators is the per-field dispatch table. Fields without an entry
// are never blocking.
var fieldValidators = map[string]FieldValidator{
	FieldFirstName:         validateName,
	FieldLastName:          validateName,
	FieldSupporterBuddy:    validateName,
	FieldEmail:             validateEmail,
	FieldPhone:             validatePhone,
	FieldTicketID:          requireSelection("Please select a ticket"),
	FieldTimeslotPriority1: requireSelection("Please select a first-choice time slot"),
	FieldTimeslotPriority2: requireSelection("Please select a second-choice time slot"),
	FieldTimeslotPriority3: requireSelection("Please select a third-choice time slot"),
	FieldSignature:         validateSignature,
}

// Validate checks a single field value. Unknown fields validate clean.
func Validate(field string, value any) string {
	v, ok := fieldValidators[field]
	if !ok {
		return ""
	}
	return v(value)
}

// ValidateAll runs every registered validator against the draft and returns
// the non-empty results keyed by field.
func ValidateAll(b *Booking) map[string]string {
	errs := make(map[string]string)
	for field := range fieldValidators {
		if msg := Validate(field, b.Field(field)); msg != "" {
			errs[field] = msg
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateName(value any) string {
	s, ok := asString(value)
	if !ok || s == "" {
		return "This field is required"
	}
	if !namePattern.MatchString(s) {
		return "Only letters and spaces are allowed"
	}
	return ""
}

func validateEmail(value any) string {
	s, ok := asString(value)
	if !ok || s == "" {
		return "This field is required"
	}
	if !emailPattern.MatchString(s) {
		return "Invalid email address"
	}
	return ""
}

func validatePhone(value any) string {
	s, ok := asString(value)
	if !ok || s == "" {
		return "This field is required"
	}
	if !phonePattern.MatchString(s) {
		return "Phone number must be 10 to 15 digits"
	}
	return ""
}

func requireSelection(msg string) FieldValidator {
	return func(value any) string {
		n, ok := asInt(value)
		if !ok || n == None {
			return msg
		}
		return ""
	}
}

func validateSignature(value any) string {
	s, ok := asString(value)
	if !ok || s == "" {
		return "Signature is required"
	}
	return ""
}

// Field returns the current value of a field by key, nil for unknown keys.
func (b *Booking) Field(key string) any {
	switch key {
	case FieldFirstName:
		return b.FirstName
	case FieldLastName:
		return b.LastName
	case FieldEmail:
		return b.Email
	case FieldPhone:
		return b.Phone
	case FieldTicketID:
		return b.TicketID
	case FieldBeverageID:
		return b.BeverageID
	case FieldFoodID:
		return b.FoodID
	case FieldTimeslotPriority1:
		return b.TimeslotPriority1
	case FieldTimeslotPriority2:
		return b.TimeslotPriority2
	case FieldTimeslotPriority3:
		return b.TimeslotPriority3
	case FieldMaterialIDs:
		return b.MaterialIDs
	case FieldAmountShifts:
		return b.AmountShifts
	case FieldSupporterBuddy:
		return b.SupporterBuddy
	case FieldSignature:
		return b.Signature
	}
	return nil
}

// fieldSetters is the mutation dispatch table mirroring fieldValidators.
var fieldSetters = map[string]func(*Booking, any) error{
	FieldFirstName:         setString(func(b *Booking, s string) { b.FirstName = s }),
	FieldLastName:          setString(func(b *Booking, s string) { b.LastName = s }),
	FieldEmail:             setString(func(b *Booking, s string) { b.Email = s }),
	FieldPhone:             setString(func(b *Booking, s string) { b.Phone = s }),
	FieldSupporterBuddy:    setString(func(b *Booking, s string) { b.SupporterBuddy = s }),
	FieldSignature:         setString(func(b *Booking, s string) { b.Signature = s }),
	FieldTicketID:          setInt(func(b *Booking, n int) { b.TicketID = n }),
	FieldBeverageID:        setInt(func(b *Booking, n int) { b.BeverageID = n }),
	FieldFoodID:            setInt(func(b *Booking, n int) { b.FoodID = n }),
	FieldTimeslotPriority1: setInt(func(b *Booking, n int) { b.TimeslotPriority1 = n }),
	FieldTimeslotPriority2: setInt(func(b *Booking, n int) { b.TimeslotPriority2 = n }),
	FieldTimeslotPriority3: setInt(func(b *Booking, n int) { b.TimeslotPriority3 = n }),
	FieldMaterialIDs:       setMaterialIDs,
	FieldAmountShifts:      setAmountShifts,
}

// ApplyField mutates the draft field identified by key. Values arrive as
// decoded JSON, so numbers may be float64 or json.Number.
func ApplyField(b *Booking, key string, value any) error {
	setter, ok := fieldSetters[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, key)
	}
	return setter(b, value)
}

func setString(assign func(*Booking, string)) func(*Booking, any) error {
	return func(b *Booking, value any) error {
		s, ok := asString(value)
		if !ok {
			return ErrInvalidFieldValue
		}
		assign(b, s)
		return nil
	}
}

func setInt(assign func(*Booking, int)) func(*Booking, any) error {
	return func(b *Booking, value any) error {
		n, ok := asInt(value)
		if !ok {
			return ErrInvalidFieldValue
		}
		assign(b, n)
		return nil
	}
}

func setMaterialIDs(b *Booking, value any) error {
	switch v := value.(type) {
	case []int:
		b.MaterialIDs = append([]int(nil), v...)
		return nil
	case []any:
		ids := make([]int, 0, len(v))
		for _, item := range v {
			n, ok := asInt(item)
			if !ok {
				return ErrInvalidFieldValue
			}
			ids = append(ids, n)
		}
		b.MaterialIDs = ids
		return nil
	}
	return ErrInvalidFieldValue
}

func setAmountShifts(b *Booking, value any) error {
	n, ok := asInt(value)
	if !ok || n < 1 || n > 3 {
		return ErrInvalidFieldValue
	}
	b.AmountShifts = n
	return nil
}

func asString(value any) (string, bool) {
	s, ok := value.(string)
	return s, ok
}

func asInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}
