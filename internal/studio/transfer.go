package studio

import (
	"context"
	"fmt"
	"io"

	"github.com/abhisek/expertmaker/internal/plan"
)

// Import replaces the current plan with the document read from r. On any
// decode failure the stored plan is left untouched.
func (s *Service) Import(ctx context.Context, r io.Reader) (*plan.ExpertPlan, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}
	p, err := plan.Unmarshal(data)
	if err != nil {
		s.log.Warn("plan import rejected", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrImport, err)
	}
	if err := s.savePlan(ctx, s.repos.Plans, p); err != nil {
		return nil, err
	}
	s.log.Info("plan imported", "plan_id", p.ID, "title", p.Title)
	return p, nil
}

// Export writes the current plan as a JSON document and returns the
// suggested file name.
func (s *Service) Export(ctx context.Context, w io.Writer) (string, error) {
	p, err := s.Plan(ctx)
	if err != nil {
		return "", err
	}
	if err := plan.WriteJSON(w, p); err != nil {
		return "", err
	}
	return plan.ExportFilename(p, ".json"), nil
}

// ExportWorkbook writes the current plan as an xlsx workbook and returns the
// suggested file name.
func (s *Service) ExportWorkbook(ctx context.Context, w io.Writer) (string, error) {
	p, err := s.Plan(ctx)
	if err != nil {
		return "", err
	}
	if err := plan.WriteWorkbook(w, p); err != nil {
		return "", err
	}
	return plan.ExportFilename(p, ".xlsx"), nil
}
