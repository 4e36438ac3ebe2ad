package service

import (
	"context"
	"errors"

	"genset-rental-backend/internal/domain"
	"genset-rental-backend/internal/logger"
	"genset-rental-backend/internal/repository"
	"genset-rental-backend/internal/validation"
)

const settingImageFolder = "settings"

type siteSettingService struct {
	settingRepo repository.SiteSettingRepository
	images      ImageStorageService
}

func NewSiteSettingService(settingRepo repository.SiteSettingRepository, images ImageStorageService) SiteSettingService {
	return &siteSettingService{settingRepo: settingRepo, images: images}
}

func (s *siteSettingService) ListSettings(ctx context.Context) ([]domain.SiteSetting, error) {
	return s.settingRepo.List(ctx)
}

// PublicSettings flattens all settings into a key/value map for the public site.
func (s *siteSettingService) PublicSettings(ctx context.Context) (map[string]string, error) {
	settings, err := s.settingRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(settings))
	for _, st := range settings {
		out[st.Key] = st.Value
	}
	return out, nil
}

func (s *siteSettingService) CreateSetting(ctx context.Context, input domain.SiteSettingInput) (*domain.SiteSetting, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	st := &domain.SiteSetting{
		Key:         input.Key,
		Value:       input.Value,
		Type:        input.Type,
		Description: input.Description,
	}
	if st.Type == "" {
		st.Type = "text"
	}
	if err := s.settingRepo.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *siteSettingService) UpdateSetting(ctx context.Context, key, value string) (*domain.SiteSetting, error) {
	if err := s.settingRepo.UpdateValue(ctx, key, value); err != nil {
		return nil, err
	}
	return s.settingRepo.Get(ctx, key)
}

func (s *siteSettingService) SetHeroImage(ctx context.Context, image *domain.Upload) (*domain.SiteSetting, error) {
	logger.EnterMethod(ctx, "siteSettingService.SetHeroImage")

	var previous string
	current, err := s.settingRepo.Get(ctx, domain.HeroImageSettingKey)
	switch {
	case err == nil:
		previous = current.Value
	case !errors.Is(err, domain.ErrNotFound):
		logger.ExitMethodWithError(ctx, "siteSettingService.SetHeroImage", err, false)
		return nil, err
	}

	ref, err := s.images.StoreUpload(ctx, settingImageFolder, image)
	if err != nil {
		logger.ExitMethodWithError(ctx, "siteSettingService.SetHeroImage", err, isClientError(err))
		return nil, err
	}

	st := &domain.SiteSetting{
		Key:         domain.HeroImageSettingKey,
		Value:       ref,
		Type:        "image",
		Description: "Landing page hero image",
	}
	if err := s.settingRepo.Upsert(ctx, st); err != nil {
		if derr := s.images.Delete(ctx, ref); derr != nil {
			logger.FromContext(ctx).Warn("Failed to remove unused hero image", "image", ref, "error", derr)
		}
		logger.ExitMethodWithError(ctx, "siteSettingService.SetHeroImage", err, isClientError(err))
		return nil, err
	}

	if previous != "" && previous != ref {
		if err := s.images.Delete(ctx, previous); err != nil {
			logger.FromContext(ctx).Warn("Failed to remove previous hero image", "image", previous, "error", err)
		}
	}

	logger.ExitMethod(ctx, "siteSettingService.SetHeroImage", "image", ref)
	return st, nil
}
