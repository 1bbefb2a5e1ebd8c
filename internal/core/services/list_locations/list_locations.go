package listlocations

import (
	"context"
	"errors"
	"strings"
	e "userapi/internal/core/domain/errors"
	"userapi/internal/core/domain/logging"
	"userapi/internal/core/domain/user"
	"userapi/internal/core/services"
)

var (
	ErrMissingParent = errors.New("parent location is required")
	ErrUnknownLevel  = errors.New("unknown location level")
)

type Level struct {
	v string
}

var (
	Countries = Level{v: "countries"}
	States    = Level{v: "states"}
	Cities    = Level{v: "cities"}
)

func (l Level) String() string {
	return l.v
}

type Input struct {
	Level  Level
	Parent string
}

// CacheKey identifies the lookup. Parents are case-sensitive, so they are kept as is.
func (i Input) CacheKey() string {
	if i.Level == Countries {
		return "locations::" + i.Level.v
	}
	return "locations::" + i.Level.v + "::" + i.Parent
}

type Result struct {
	Values []string
}

type service struct {
	log                logging.Logger
	locationRepository user.LocationRepository
}

func New(
	log logging.Logger,
	locationRepository user.LocationRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if locationRepository == nil {
		panic(e.NewNilArgumentError("locationRepository"))
	}
	return &service{
		log:                log,
		locationRepository: locationRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	var values []string
	switch input.Level {
	case Countries:
		values, err = s.locationRepository.ListCountries(ctx)
	case States, Cities:
		if strings.TrimSpace(input.Parent) == "" {
			return result, ErrMissingParent
		}
		if input.Level == States {
			values, err = s.locationRepository.ListStates(ctx, input.Parent)
		} else {
			values, err = s.locationRepository.ListCities(ctx, input.Parent)
		}
	default:
		return result, ErrUnknownLevel
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("level", input.Level.String()), logging.Entry("parent", input.Parent))
		return result, err
	}
	if values == nil {
		values = []string{}
	}
	return Result{Values: values}, nil
}
