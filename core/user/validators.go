package user

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/classroom/core"
)

var (
	userTypeTag  = "usertype"
	userTypeText = "invalid user type"

	// password policy
	pwdMinLen     = 8
	pwdMinLenText = fmt.Sprintf("password must contain at least %d characters", pwdMinLen)

	pwdNoSpaceText   = "password must not contain whitespace"
	pwdNotAllNumText = "password cannot be entirely numeric"

	pwdMaxSim      = .7
	pwdAttrSimText = "password cannot be similar to user attributes"
)

func init() {
	_ = core.Validate.RegisterValidation(userTypeTag, userTypeValidation)
	core.RegisterCustomTranslation(core.Validate, core.Translator, userTypeTag, userTypeText)
}

// userTypeValidation checks that the user type is one of UserTypes.
func userTypeValidation(fl validator.FieldLevel) bool {
	ut, ok := fl.Field().Interface().(UserType)
	if !ok {
		return false
	}
	for _, t := range UserTypes {
		if ut == t {
			return true
		}
	}
	return false
}

// ValidatePassword checks pwd against the password policy:
// at least 8 characters, no whitespace, not all digits and not too similar to the email or names of usr.
func ValidatePassword(pwd string, usr User) error {
	fail := func(text string) error {
		return core.NewValidationError(nil, core.FieldError{Field: "password", Error: text})
	}

	if len([]rune(pwd)) < pwdMinLen {
		return fail(pwdMinLenText)
	}
	digitCount := 0
	for _, char := range pwd {
		if unicode.IsSpace(char) {
			return fail(pwdNoSpaceText)
		}
		if unicode.IsDigit(char) {
			digitCount++
		}
	}
	if digitCount == len([]rune(pwd)) {
		return fail(pwdNotAllNumText)
	}

	lpwd := strings.ToLower(pwd)
	for _, attr := range []string{usr.Email, strings.SplitN(usr.Email, "@", 2)[0], usr.Firstname, usr.Lastname} {
		if similarity(lpwd, strings.ToLower(attr)) >= pwdMaxSim {
			return fail(pwdAttrSimText)
		}
	}
	return nil
}

func similarity(pwd, attr string) float64 {
	if attr == "" {
		return 0
	}
	return difflib.NewMatcher(strings.Split(pwd, ""), strings.Split(attr, "")).QuickRatio()
}
