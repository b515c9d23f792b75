package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks field ranges and cross-field rules.
func (c *Config) Validate() error {
	if err := getValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fieldMessage(fe))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}

	floors := c.Plan.WikiFloor + c.Plan.NewsFloor + c.Plan.FactFloor
	if floors > 1 {
		return fmt.Errorf("plan floors sum to %.2f, must not exceed 1", floors)
	}
	if c.Plan.NewsRatio+c.Plan.RelatedRatio+c.Plan.FillerRatio >= 1 {
		return errors.New("plan ratios leave no room for wiki")
	}
	// Per-source news fetches must end before the bucket guard does.
	if c.News.Timeout >= c.Feed.FetchTimeout {
		return fmt.Errorf("news.timeout %v must be below feed.fetch_timeout %v", c.News.Timeout, c.Feed.FetchTimeout)
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	// Config.Feed.SearchLimit -> feed.searchlimit
	path := strings.ToLower(strings.TrimPrefix(fe.Namespace(), "Config."))
	if fe.Param() != "" {
		return fmt.Sprintf("%s: failed %s=%s (got %v)", path, fe.Tag(), fe.Param(), fe.Value())
	}
	return fmt.Sprintf("%s: failed %s", path, fe.Tag())
}
