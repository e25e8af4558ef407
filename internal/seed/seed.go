package seed

import (
	"context"
	_ "embed"
	"fmt"

	"taskManager/internal/logger"
	"taskManager/internal/models/field"
	"taskManager/internal/models/label"
	"taskManager/internal/models/status"
	"taskManager/internal/models/user"
	"taskManager/internal/service"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yml
var defaultsYAML []byte

type Data struct {
	Admin struct {
		FirstName string `yaml:"firstName"`
		LastName  string `yaml:"lastName"`
		Email     string `yaml:"email"`
		Password  string `yaml:"password"`
	} `yaml:"admin"`
	Statuses []struct {
		Name string `yaml:"name"`
		Slug string `yaml:"slug"`
	} `yaml:"statuses"`
	Labels []string `yaml:"labels"`
}

type UserCreator interface {
	Create(ctx context.Context, data user.Draft) (*user.User, error)
}

type StatusCreator interface {
	Create(ctx context.Context, data status.Draft) (*status.Status, error)
}

type LabelCreator interface {
	Create(ctx context.Context, data label.Draft) (*label.Label, error)
}

func Defaults() (*Data, error) {
	return Parse(defaultsYAML)
}

func Parse(raw []byte) (*Data, error) {
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("разбор начальных данных: %w", err)
	}
	return &data, nil
}

// Run создаёт администратора, статусы и метки. Уже существующие записи пропускаются,
// поэтому повторный запуск безопасен.
func Run(ctx context.Context, data *Data, users UserCreator, statuses StatusCreator, labels LabelCreator) error {
	created := 0

	if data.Admin.Email != "" {
		_, err := users.Create(ctx, user.Draft{
			FirstName: field.Some(data.Admin.FirstName),
			LastName:  field.Some(data.Admin.LastName),
			Email:     data.Admin.Email,
			Password:  data.Admin.Password,
		})
		ok, err := skipExisting(err)
		if err != nil {
			return fmt.Errorf("администратор %s: %w", data.Admin.Email, err)
		}
		if ok {
			created++
		}
	}

	for _, st := range data.Statuses {
		_, err := statuses.Create(ctx, status.Draft{Name: st.Name, Slug: st.Slug})
		ok, err := skipExisting(err)
		if err != nil {
			return fmt.Errorf("статус %s: %w", st.Slug, err)
		}
		if ok {
			created++
		}
	}

	for _, name := range data.Labels {
		_, err := labels.Create(ctx, label.Draft{Name: name})
		ok, err := skipExisting(err)
		if err != nil {
			return fmt.Errorf("метка %s: %w", name, err)
		}
		if ok {
			created++
		}
	}

	logger.Info("Seed: Начальные данные загружены", zap.Int("created", created))
	return nil
}

// skipExisting возвращает true для созданной записи; CONFLICT ошибкой не считается
func skipExisting(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case service.HasCode(err, service.CodeConflict):
		return false, nil
	default:
		return false, err
	}
}
