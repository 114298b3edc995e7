package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"cadence/config"
	"cadence/infras/otel"
	"cadence/internal/domains/meetingtype/model"
	"cadence/internal/domains/meetingtype/model/dto"
	"cadence/internal/domains/meetingtype/repository"
	"cadence/shared"
	"cadence/shared/cache"
	"cadence/shared/constant"
	gDto "cadence/shared/dto"
)

const (
	cacheGetAllMeetingType = "meeting_type:gets"
)

type MeetingType interface {
	GetAll(ctx context.Context) (dto.GetMeetingTypesResponse, error)
}

type serviceImpl struct {
	repo  repository.MeetingType
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.MeetingType, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) MeetingType {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context) (res dto.GetMeetingTypesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllMeetingTypes")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAllMeetingType, "active")

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for meeting types")

		return res, nil
	}

	activeFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    model.TableName,
			},
		},
	}

	params := gDto.QueryParams{SortBy: model.FieldName, SortDir: constant.DefaultValueSortDir}

	models, err := s.repo.GetAll(ctx, params, activeFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get meeting types")

		return res, fmt.Errorf("failed to get meeting types: %w", err)
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save meeting types to cache")
		}
	}()

	return res, nil
}
