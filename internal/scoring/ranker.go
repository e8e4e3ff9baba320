package scoring

import (
	"context"
	"math"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ZanzyTHEbar/flowdesk-ml/internal/errors"
)

// TaskText is the text embedded for a task: its description followed by its skills.
func TaskText(task AssigneeTask) string {
	return strings.TrimSpace(task.Description + " " + strings.Join(task.Skills, " "))
}

// SkillText is the text embedded for a developer's declared skills.
func SkillText(skills []string) string {
	return strings.Join(skills, " ")
}

// RecommendAssignees ranks developers for a task and returns at most TopK of
// them, highest recommendationScore first. Ties keep roster order. Any single
// developer failing aborts the whole call.
func (s *Services) RecommendAssignees(ctx context.Context, task AssigneeTask, developers []DeveloperProfile) ([]AssigneeRecommendation, error) {
	if s.assignee == nil {
		return nil, errors.NewPreconditionError("assignee predictor not initialized")
	}
	if s.embedder == nil {
		return nil, errors.NewPreconditionError("embedding predictor not initialized")
	}
	if len(developers) == 0 {
		return []AssigneeRecommendation{}, nil
	}

	taskVec, err := s.embed(ctx, TaskText(task))
	if err != nil {
		return nil, err
	}

	skillVecs := make([][]float64, len(developers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, dev := range developers {
		g.Go(func() error {
			vec, err := s.embed(gctx, SkillText(dev.Skills))
			if err != nil {
				return err
			}
			skillVecs[i] = vec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	recs := make([]AssigneeRecommendation, 0, len(developers))
	for i, dev := range developers {
		rec, err := s.scoreDeveloper(ctx, dev, taskVec, skillVecs[i])
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].RecommendationScore > recs[j].RecommendationScore
	})
	if len(recs) > TopK {
		recs = recs[:TopK]
	}
	return recs, nil
}

func (s *Services) scoreDeveloper(ctx context.Context, dev DeveloperProfile, taskVec, skillVec []float64) (AssigneeRecommendation, error) {
	similarity, err := Similarity(taskVec, skillVec)
	if err != nil {
		return AssigneeRecommendation{}, errors.NewPredictorError("embedding", err)
	}
	skillMatch := int(math.Round(similarity))

	workload, err := ScoreWorkload(dev.CurrentWorkload, dev.MaxCapacity)
	if err != nil {
		return AssigneeRecommendation{}, err
	}

	vector := AssigneeVector(skillMatch, workload.Free, dev.CompletionRate, dev.AvgTaskDuration)
	score, err := s.assignee.Regress(ctx, vector)
	if err != nil {
		return AssigneeRecommendation{}, predictorError("assignee", err)
	}
	if math.IsNaN(score) || score < 0 || score > 100 {
		return AssigneeRecommendation{}, errors.NewPredictorError("assignee",
			errors.WrapError(errScoreOutOfRange, "developer %q scored %v", dev.ID, score))
	}

	rounded := int(math.Round(score))
	return AssigneeRecommendation{
		DeveloperID:          dev.ID,
		Name:                 dev.Name,
		SkillMatchScore:      skillMatch,
		WorkloadAvailability: workload.Availability,
		RecommendationScore:  rounded,
		Confidence:           ScoreConfidence(float64(rounded)),
		Reasoning:            Reasoning(skillMatch, workload.Availability, dev.CompletionRate, dev.AvgTaskDuration),
		CompletionRate:       dev.CompletionRate,
		AvgTaskDuration:      dev.AvgTaskDuration,
	}, nil
}
