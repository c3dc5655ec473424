package rdm

import (
	"time"

	"github.com/spf13/cast"
)

// Coercing accessors for callers that want a concrete Go type without
// switching on the stored value themselves. Each returns the zero
// value together with the error when the key is absent or the value
// cannot be coerced.

// GetString returns the value under key coerced to a string.
func (s *Section) GetString(key string) (string, error) {
	v, err := s.Get(key)
	if err != nil {
		return "", err
	}
	return cast.ToStringE(exportBindValue(v))
}

// GetInt64 returns the value under key coerced to an int64.
func (s *Section) GetInt64(key string) (int64, error) {
	v, err := s.Get(key)
	if err != nil {
		return 0, err
	}
	return cast.ToInt64E(v)
}

// GetFloat64 returns the value under key coerced to a float64.
func (s *Section) GetFloat64(key string) (float64, error) {
	v, err := s.Get(key)
	if err != nil {
		return 0, err
	}
	return cast.ToFloat64E(v)
}

// GetBool returns the value under key coerced to a bool.
func (s *Section) GetBool(key string) (bool, error) {
	v, err := s.Get(key)
	if err != nil {
		return false, err
	}
	return cast.ToBoolE(v)
}

// GetTime returns the value under key coerced to a time.Time.
func (s *Section) GetTime(key string) (time.Time, error) {
	v, err := s.Get(key)
	if err != nil {
		return time.Time{}, err
	}
	return cast.ToTimeE(v)
}

// GetStringSlice returns the value under key coerced to a string
// slice. Sets come back in unspecified order.
func (s *Section) GetStringSlice(key string) ([]string, error) {
	v, err := s.Get(key)
	if err != nil {
		return nil, err
	}
	return cast.ToStringSliceE(exportBindValue(v))
}
