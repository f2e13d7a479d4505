package usecase_test

import (
	"context"
	"testing"

	"github.com/bcm-lab/atropos/pkg/domain/model"
	"github.com/bcm-lab/atropos/pkg/domain/types"
	"github.com/bcm-lab/atropos/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func TestFrameworkCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("weights must sum to 100", func(t *testing.T) {
		_, err := f.uc.Framework.Create(ctx, &model.Framework{
			ID: "fw-light", Name: "Light", Formula: types.FormulaWeightedAverage, Threshold: 2.5,
			Parameters: []model.FrameworkParameter{
				{ParameterID: "param-financial", Weight: 50, Order: 1},
				{ParameterID: "param-customer", Weight: 30, Order: 2},
			},
			Active: true,
		})
		gt.Error(t, err).Is(model.ErrWeightSumInvalid)
	})

	t.Run("at least one parameter", func(t *testing.T) {
		_, err := f.uc.Framework.Create(ctx, &model.Framework{
			ID: "fw-empty", Name: "Empty", Formula: types.FormulaWeightedAverage, Threshold: 2.5,
			Active: true,
		})
		gt.Error(t, err).Is(model.ErrEmptyFramework)
	})

	t.Run("unknown parameter reference", func(t *testing.T) {
		_, err := f.uc.Framework.Create(ctx, &model.Framework{
			ID: "fw-broken", Name: "Broken", Formula: types.FormulaWeightedAverage, Threshold: 2.5,
			Parameters: []model.FrameworkParameter{
				{ParameterID: "param-ghost", Weight: 100, Order: 1},
			},
			Active: true,
		})
		gt.Error(t, err).Is(usecase.ErrParameterNotFound)
	})

	t.Run("retired parameter reference", func(t *testing.T) {
		param, err := f.uc.Catalog.GetParameter(ctx, "param-regulatory")
		gt.NoError(t, err)
		param.Active = false
		_, err = f.uc.Catalog.UpdateParameter(ctx, param)
		gt.NoError(t, err)

		_, err = f.uc.Framework.Create(ctx, &model.Framework{
			ID: "fw-stale", Name: "Stale", Formula: types.FormulaWeightedAverage, Threshold: 2.5,
			Parameters: []model.FrameworkParameter{
				{ParameterID: "param-regulatory", Weight: 100, Order: 1},
			},
			Active: true,
		})
		gt.Error(t, err)
	})

	t.Run("ID is generated when omitted", func(t *testing.T) {
		created, err := f.uc.Framework.Create(ctx, &model.Framework{
			Name: "Single Dimension", Formula: types.FormulaWeightedAverage, Threshold: 2.5,
			Parameters: []model.FrameworkParameter{
				{ParameterID: "param-customer", Weight: 100, Order: 1},
			},
			Active: true,
		})
		gt.NoError(t, err)
		gt.Value(t, created.ID).NotEqual("")
	})
}

func TestFrameworkSampleScore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("sample scoring persists nothing", func(t *testing.T) {
		result, err := f.uc.Framework.SampleScore(ctx, "fw-standard", completeRatings())
		gt.NoError(t, err)
		gt.Number(t, result.Score).Equal(3.4)
		gt.Bool(t, result.Critical).True()

		instances, err := f.uc.BIA.List(ctx)
		gt.NoError(t, err)
		gt.Number(t, len(instances)).Equal(0)
	})

	t.Run("score below the threshold is not critical", func(t *testing.T) {
		result, err := f.uc.Framework.SampleScore(ctx, "fw-standard", []usecase.RatingInput{
			{ParameterID: "param-financial", Value: floatPtr(5)},
			{ParameterID: "param-customer", Label: "Low"},
			{ParameterID: "param-regulatory", Label: "Low"},
		})
		gt.NoError(t, err)
		gt.Number(t, result.Score).Equal(1.0)
		gt.Bool(t, result.Critical).False()
	})

	t.Run("incomplete sample input is rejected", func(t *testing.T) {
		_, err := f.uc.Framework.SampleScore(ctx, "fw-standard", []usecase.RatingInput{
			{ParameterID: "param-customer", Label: "Low"},
		})
		gt.Error(t, err).Is(model.ErrIncompleteSubmission)
	})

	t.Run("unknown framework", func(t *testing.T) {
		_, err := f.uc.Framework.SampleScore(ctx, "fw-ghost", completeRatings())
		gt.Error(t, err).Is(usecase.ErrFrameworkNotFound)
	})
}
