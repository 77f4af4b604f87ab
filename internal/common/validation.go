package common

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// ValidateNotEmpty validates that a string is not empty
func ValidateNotEmpty(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("value cannot be empty")
	}
	return nil
}

// ValidateBool validates a boolean setting (true/false, yes/no, 1/0)
func ValidateBool(value string) error {
	_, err := ParseBool(value)
	return err
}

// ParseBool parses the boolean forms accepted by ValidateBool
func ParseBool(value string) (bool, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "yes", "y":
		return true, nil
	case "no", "n":
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid boolean: %s", value)
	}
	return b, nil
}

// ValidateLogLevel validates a log level name understood by logrus
func ValidateLogLevel(level string) error {
	if _, err := logrus.ParseLevel(level); err != nil {
		return fmt.Errorf("invalid log level: %s", level)
	}
	return nil
}
