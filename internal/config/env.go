package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// processStructFields walks the config and applies every `env` tag whose
// variable is set in the environment.
func processStructFields(s interface{}) error {
	_, err := applyEnv(reflect.ValueOf(s))
	return err
}

// OverriddenKeys lists the env variables that currently override cfg fields
func OverriddenKeys() []string {
	var keys []string
	collectEnvKeys(reflect.TypeOf(Config{}), func(key string) {
		if _, ok := os.LookupEnv(key); ok {
			keys = append(keys, key)
		}
	})
	return keys
}

func applyEnv(val reflect.Value) (int, error) {
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return 0, nil
	}

	applied := 0
	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		if field.Kind() == reflect.Struct {
			n, err := applyEnv(field.Addr())
			if err != nil {
				return applied, err
			}
			applied += n
			continue
		}

		key := fieldType.Tag.Get("env")
		if key == "" {
			continue
		}
		raw, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		if err := setFieldFromEnv(field, raw); err != nil {
			return applied, fmt.Errorf("failed to set field %s from env var %s: %w", fieldType.Name, key, err)
		}
		applied++
	}
	return applied, nil
}

func collectEnvKeys(typ reflect.Type, fn func(string)) {
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if f.Type.Kind() == reflect.Struct {
			collectEnvKeys(f.Type, fn)
			continue
		}
		if key := f.Tag.Get("env"); key != "" {
			fn(key)
		}
	}
}

// setFieldFromEnv sets a field value from an environment variable string
func setFieldFromEnv(field reflect.Value, value string) error {
	if !field.CanSet() {
		return fmt.Errorf("field cannot be set")
	}

	value = strings.TrimSpace(value)
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer format: %w", err)
		}
		field.SetInt(intValue)

	case reflect.Bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean format: %w", err)
		}
		field.SetBool(boolValue)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}
