package firestore

import (
	"github.com/bcm-lab/atropos/pkg/domain/model"
	"github.com/bcm-lab/atropos/pkg/domain/types"
)

type ratingDefinitionDocument struct {
	Label    string   `firestore:"label"`
	Score    int      `firestore:"score"`
	MinValue *float64 `firestore:"min_value"`
	MaxValue *float64 `firestore:"max_value"`
	Order    int      `firestore:"order"`
}

func toRatingDefinitionDocs(defs []model.RatingDefinition) []ratingDefinitionDocument {
	docs := make([]ratingDefinitionDocument, len(defs))
	for i, def := range defs {
		docs[i] = ratingDefinitionDocument{
			Label:    def.Label,
			Score:    def.Score,
			MinValue: def.MinValue,
			MaxValue: def.MaxValue,
			Order:    def.Order,
		}
	}
	return docs
}

func fromRatingDefinitionDocs(docs []ratingDefinitionDocument) []model.RatingDefinition {
	defs := make([]model.RatingDefinition, len(docs))
	for i, doc := range docs {
		defs[i] = model.RatingDefinition{
			Label:    doc.Label,
			Score:    doc.Score,
			MinValue: doc.MinValue,
			MaxValue: doc.MaxValue,
			Order:    doc.Order,
		}
	}
	return defs
}

type rtoValueDocument struct {
	OptionID        string `firestore:"option_id"`
	Label           string `firestore:"label"`
	DurationMinutes int    `firestore:"duration_minutes"`
}

func toRTOValueDoc(v *model.RTOValue) *rtoValueDocument {
	if v == nil {
		return nil
	}
	return &rtoValueDocument{
		OptionID:        v.OptionID.String(),
		Label:           v.Label,
		DurationMinutes: v.DurationMinutes,
	}
}

func fromRTOValueDoc(doc *rtoValueDocument) *model.RTOValue {
	if doc == nil {
		return nil
	}
	return &model.RTOValue{
		OptionID:        types.RTOOptionID(doc.OptionID),
		Label:           doc.Label,
		DurationMinutes: doc.DurationMinutes,
	}
}
