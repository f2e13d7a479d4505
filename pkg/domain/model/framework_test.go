package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/bcm-lab/atropos/pkg/domain/model"
	"github.com/bcm-lab/atropos/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func validFramework() *model.Framework {
	return &model.Framework{
		ID:        types.NewFrameworkID(),
		Name:      "Standard BIA",
		Formula:   types.FormulaWeightedAverage,
		Threshold: 3.5,
		Parameters: []model.FrameworkParameter{
			{ParameterID: "revenue-loss", Weight: 60, Order: 1},
			{ParameterID: "reputation", Weight: 40, Order: 2},
		},
		Active: true,
	}
}

func TestFramework_Validate(t *testing.T) {
	t.Run("accepts weights summing to 100", func(t *testing.T) {
		gt.NoError(t, validFramework().Validate())
	})

	t.Run("rejects weight sum below 100", func(t *testing.T) {
		fw := validFramework()
		fw.Parameters[1].Weight = 30
		err := fw.Validate()
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, model.ErrWeightSumInvalid)).True()
	})

	t.Run("rejects weight sum above 100", func(t *testing.T) {
		fw := validFramework()
		fw.Parameters[1].Weight = 50
		err := fw.Validate()
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, model.ErrWeightSumInvalid)).True()
	})

	t.Run("rejects zero parameters", func(t *testing.T) {
		fw := validFramework()
		fw.Parameters = nil
		err := fw.Validate()
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, model.ErrEmptyFramework)).True()
	})

	t.Run("rejects duplicate parameter selection", func(t *testing.T) {
		fw := validFramework()
		fw.Parameters[1].ParameterID = fw.Parameters[0].ParameterID
		gt.Error(t, fw.Validate())
	})

	t.Run("rejects unknown formula", func(t *testing.T) {
		fw := validFramework()
		fw.Formula = "geometric_mean"
		gt.Error(t, fw.Validate())
	})
}

func TestNewFrameworkSnapshot(t *testing.T) {
	fw := validFramework()
	params := map[types.ParameterID]*model.Parameter{
		"revenue-loss": {
			ID: "revenue-loss", CategoryID: "financial", Name: "Revenue Loss",
			Kind: types.RatingKindQualitative,
			Definitions: []model.RatingDefinition{
				{Label: "Low", Score: 1, Order: 1},
				{Label: "High", Score: 5, Order: 2},
			},
			Active: true,
		},
		"reputation": {
			ID: "reputation", CategoryID: "reputational", Name: "Reputation",
			Kind: types.RatingKindQualitative,
			Definitions: []model.RatingDefinition{
				{Label: "Low", Score: 1, Order: 1},
				{Label: "High", Score: 3, Order: 2},
			},
			Active: true,
		},
	}

	t.Run("freezes parameters in framework order", func(t *testing.T) {
		now := time.Now().UTC()
		snapshot, err := model.NewFrameworkSnapshot(fw, params, now)
		gt.NoError(t, err).Required()

		gt.Value(t, snapshot.FrameworkID).Equal(fw.ID)
		gt.Array(t, snapshot.Parameters).Length(2)
		gt.Value(t, snapshot.Parameters[0].ParameterID).Equal(types.ParameterID("revenue-loss"))
		gt.Number(t, snapshot.Parameters[0].Weight).Equal(60)
		gt.Array(t, snapshot.Parameters[0].Definitions).Length(2)
		gt.Value(t, snapshot.TakenAt).Equal(now)
	})

	t.Run("snapshot is detached from the live parameter", func(t *testing.T) {
		snapshot, err := model.NewFrameworkSnapshot(fw, params, time.Now().UTC())
		gt.NoError(t, err).Required()

		params["revenue-loss"].Definitions[0].Score = 99
		gt.Number(t, snapshot.Parameters[0].Definitions[0].Score).Equal(1)
		params["revenue-loss"].Definitions[0].Score = 1
	})

	t.Run("fails on unresolved parameter reference", func(t *testing.T) {
		broken := validFramework()
		broken.Parameters = append(broken.Parameters, model.FrameworkParameter{
			ParameterID: "missing", Weight: 0, Order: 3,
		})
		_, err := model.NewFrameworkSnapshot(broken, params, time.Now().UTC())
		gt.Error(t, err)
	})
}
