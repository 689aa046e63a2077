package joinspec

import (
	"github.com/okra-platform/fedcompose/internal/schema"
)

func requiredArgument(application *schema.Directive, name string) (*schema.Value, error) {
	value := application.Argument(name)
	if value == nil || value.Kind == schema.ValueKindNull {
		return nil, internalf("required argument %q of directive @%s is not present", name, application.Name)
	}
	return value, nil
}

func requiredStringArgument(application *schema.Directive, name string) (string, error) {
	value, err := requiredArgument(application, name)
	if err != nil {
		return "", err
	}
	if value.Kind != schema.ValueKindString {
		return "", internalf("argument %q of directive @%s must be a string, got %s", name, application.Name, value)
	}
	return value.Raw, nil
}

func requiredEnumArgument(application *schema.Directive, name string) (string, error) {
	value, err := requiredArgument(application, name)
	if err != nil {
		return "", err
	}
	if value.Kind != schema.ValueKindEnum {
		return "", internalf("argument %q of directive @%s must be an enum value, got %s", name, application.Name, value)
	}
	return value.Raw, nil
}

func optionalStringArgument(application *schema.Directive, name string) (string, bool, error) {
	value := application.Argument(name)
	if value == nil || value.Kind == schema.ValueKindNull {
		return "", false, nil
	}
	if value.Kind != schema.ValueKindString {
		return "", false, internalf("argument %q of directive @%s must be a string, got %s", name, application.Name, value)
	}
	return value.Raw, true, nil
}

func optionalEnumArgument(application *schema.Directive, name string) (string, bool, error) {
	value := application.Argument(name)
	if value == nil || value.Kind == schema.ValueKindNull {
		return "", false, nil
	}
	if value.Kind != schema.ValueKindEnum {
		return "", false, internalf("argument %q of directive @%s must be an enum value, got %s", name, application.Name, value)
	}
	return value.Raw, true, nil
}

func optionalBooleanArgument(application *schema.Directive, name string) (*bool, error) {
	value := application.Argument(name)
	if value == nil || value.Kind == schema.ValueKindNull {
		return nil, nil
	}
	if value.Kind != schema.ValueKindBoolean {
		return nil, internalf("argument %q of directive @%s must be a boolean, got %s", name, application.Name, value)
	}
	b := value.Bool
	return &b, nil
}

// optionalListArgument returns the list items. A single non-list value is
// coerced to a one-item list, as input coercion does.
func optionalListArgument(application *schema.Directive, name string) ([]*schema.Value, bool) {
	value := application.Argument(name)
	if value == nil || value.Kind == schema.ValueKindNull {
		return nil, false
	}
	if value.Kind != schema.ValueKindList {
		return []*schema.Value{value}, true
	}
	return value.List, true
}
