package database

import (
	"fmt"
	"reflect"
	"strings"
)

// fieldValue returns the value of the struct field of rec whose json tag is name.
func fieldValue(rec interface{}, name string) (interface{}, bool) {
	v := reflect.Indirect(reflect.ValueOf(rec))
	if v.Kind() != reflect.Struct {
		return nil, false
	}
	typ := v.Type()
	for i := 0; i < typ.NumField(); i++ {
		fld := typ.Field(i)
		tag := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			continue
		}
		if tag == name {
			return v.Field(i).Interface(), true
		}
	}
	return nil, false
}

func formatValue(val interface{}) string {
	if val == nil {
		return ""
	}
	if s, ok := val.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(val)
}
