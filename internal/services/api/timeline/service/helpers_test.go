package service

import "activitycal/internal/platform/config"

func configFor(prefix string) config.Conf { return config.New().Prefix(prefix) }
