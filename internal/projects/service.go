package projects

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/measurebook/measurebook/internal/billing"
	"github.com/measurebook/measurebook/internal/companies"
	"github.com/measurebook/measurebook/internal/platform/httpx"
	"github.com/measurebook/measurebook/internal/shared"
)

// Service implements project lifecycle and the sheet save protocol.
type Service struct {
	repo      Repository
	companies *companies.Service
}

// NewService wires the project service to its stores.
func NewService(repo Repository, companyService *companies.Service) *Service {
	return &Service{repo: repo, companies: companyService}
}

// Create registers a new project after checking the company's plan quota.
// New projects start Active with an empty sheet and a zero total.
func (s *Service) Create(ctx context.Context, ident shared.Identity, req CreateProjectRequest) (Project, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return Project{}, fmt.Errorf("%w: date must be in YYYY-MM-DD format", httpx.ErrValidation)
	}

	company, err := s.companies.Get(ctx, ident.CompanyID)
	if err != nil {
		return Project{}, fmt.Errorf("load company: %w", err)
	}
	count, err := s.repo.CountByCompany(ctx, ident.CompanyID)
	if err != nil {
		return Project{}, fmt.Errorf("count projects: %w", err)
	}
	if count >= company.ProjectLimit {
		return Project{}, ErrQuotaExceeded
	}

	p := Project{
		Name:       strings.TrimSpace(req.Name),
		ClientName: strings.TrimSpace(req.ClientName),
		Date:       date,
		Location:   strings.TrimSpace(req.Location),
		Notes:      req.Notes,
		CompanyID:  ident.CompanyID,
		CreatedBy:  ident.UserID,
		Status:     StatusActive,
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return Project{}, fmt.Errorf("create project: %w", err)
	}
	return created, nil
}

// List returns all of the company's projects, newest first, with
// display-formatted totals.
func (s *Service) List(ctx context.Context, ident shared.Identity) ([]ProjectSummary, error) {
	all, err := s.repo.List(ctx, ident.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	summaries := make([]ProjectSummary, 0, len(all))
	for _, p := range all {
		summaries = append(summaries, ProjectSummary{
			Project:      p,
			TotalDisplay: billing.FormatAmount(p.TotalAmount),
		})
	}
	return summaries, nil
}

// Fetch loads a project with its full sheet. The project row and the
// sheet load concurrently; ownership is enforced by the scoped Get.
func (s *Service) Fetch(ctx context.Context, ident shared.Identity, projectID int64) (*FetchProjectResponse, error) {
	var (
		project  *Project
		sections []Section
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.repo.Get(gctx, projectID, ident.CompanyID)
		if err != nil {
			return err
		}
		project = p
		return nil
	})
	g.Go(func() error {
		secs, err := s.repo.ListSheet(gctx, projectID)
		if err != nil {
			return err
		}
		sections = secs
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if sections == nil {
		sections = []Section{}
	}
	return &FetchProjectResponse{Project: project, Sections: sections}, nil
}

// SaveSheet replaces the project's sheet with the submitted state and
// recomputes every derived amount from size, qty, and rate. The old
// sheet is deleted and the new one inserted in a single transaction, so
// a failed save leaves the previous sheet untouched. Returns the new
// final total including tax.
func (s *Service) SaveSheet(ctx context.Context, ident shared.Identity, projectID int64, req SaveSheetRequest) (float64, error) {
	if err := ValidateSaveSheet(req); err != nil {
		return 0, err
	}
	if _, err := s.repo.Get(ctx, projectID, ident.CompanyID); err != nil {
		return 0, err
	}

	sectionTotals := make([]float64, len(req.Sections))
	amounts := make([][]float64, len(req.Sections))
	for i, sec := range req.Sections {
		amounts[i] = make([]float64, len(sec.Items))
		for j, item := range sec.Items {
			amounts[i][j] = billing.ItemAmount(item.Size, item.Qty, item.Rate)
		}
		sectionTotals[i] = billing.SectionTotal(amounts[i])
	}
	_, _, finalTotal := billing.ProjectTotals(sectionTotals, req.GSTPercentage)

	err := s.repo.WithTx(ctx, func(txCtx context.Context, txRepo Repository) error {
		if err := txRepo.DeleteSheet(txCtx, projectID); err != nil {
			return fmt.Errorf("delete sheet: %w", err)
		}
		for i, sec := range req.Sections {
			// Orders persist exactly as submitted; sort order is the
			// authoritative sequence on fetch.
			sectionID, err := txRepo.InsertSection(txCtx, Section{
				ProjectID:   projectID,
				Title:       strings.TrimSpace(sec.Title),
				Order:       sec.Order,
				TotalAmount: sectionTotals[i],
			})
			if err != nil {
				return fmt.Errorf("insert section: %w", err)
			}
			for j, item := range sec.Items {
				if _, err := txRepo.InsertItem(txCtx, Item{
					SectionID:   sectionID,
					Description: item.Description,
					UOM:         billing.UOM(item.UOM),
					Size:        item.Size,
					Qty:         item.Qty,
					Rate:        item.Rate,
					Amount:      amounts[i][j],
					Order:       item.Order,
				}); err != nil {
					return fmt.Errorf("insert item: %w", err)
				}
			}
		}
		return txRepo.UpdateTotals(txCtx, projectID, req.GSTPercentage, finalTotal)
	})
	if err != nil {
		return 0, err
	}
	return finalTotal, nil
}

// Delete removes a project and its sheet atomically.
func (s *Service) Delete(ctx context.Context, ident shared.Identity, projectID int64) error {
	if _, err := s.repo.Get(ctx, projectID, ident.CompanyID); err != nil {
		return err
	}
	return s.repo.WithTx(ctx, func(txCtx context.Context, txRepo Repository) error {
		return txRepo.Delete(txCtx, projectID)
	})
}
