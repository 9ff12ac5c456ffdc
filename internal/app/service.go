package app

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"dgconsult/api/internal/aicopy"
	"dgconsult/api/internal/auth"
	"dgconsult/api/internal/cache"
	"dgconsult/api/internal/config"
	"dgconsult/api/internal/email"
	"dgconsult/api/internal/images"
	"dgconsult/api/internal/ordering"
	"dgconsult/api/internal/store"
	"dgconsult/api/internal/util"
)

type Session struct {
	Token        string
	RefreshToken string
	AdminID      string
	Email        string
	Name         string
	JTI          string
	ExpiresAt    time.Time
}

// emailPattern matches the contact form's address check: one @, no
// whitespace, at least one dot in the domain.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type SectorInput struct {
	Title           string `json:"title"`
	Slug            string `json:"slug"`
	Description     string `json:"description"`
	Content         string `json:"content"`
	FeaturedImage   string `json:"featuredImage"`
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
	IsActive        *bool  `json:"isActive"`
	IsFeatured      *bool  `json:"isFeatured"`
}

type CaseStudyInput struct {
	Title           string   `json:"title"`
	Slug            string   `json:"slug"`
	Description     string   `json:"description"`
	Content         string   `json:"content"`
	ClientName      string   `json:"clientName"`
	Industry        string   `json:"industry"`
	Technologies    string   `json:"technologies"`
	Challenge       string   `json:"challenge"`
	Solution        string   `json:"solution"`
	Results         string   `json:"results"`
	Category        string   `json:"category"`
	FeaturedImage   string   `json:"featuredImage"`
	Logo            string   `json:"logo"`
	Images          []string `json:"images"`
	MetaTitle       string   `json:"metaTitle"`
	MetaDescription string   `json:"metaDescription"`
	IsPublished     *bool    `json:"isPublished"`
}

type SettingsInput struct {
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Facebook  string `json:"facebook"`
	Linkedin  string `json:"linkedin"`
	Twitter   string `json:"twitter"`
	Instagram string `json:"instagram"`
	Youtube   string `json:"youtube"`
}

type ContactInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	Message   string `json:"message"`
}

type dataStore interface {
	Ping(ctx context.Context) error
	GetAdminByEmail(context.Context, string) (store.AdminUser, error)
	GetAdminByID(context.Context, string) (store.AdminUser, error)
	CountAdminUsers(context.Context) (int, error)
	InsertAdminUser(context.Context, store.AdminUser) error
	SaveRefreshSession(ctx context.Context, tokenHash, adminID string, expiresAt time.Time) error
	LookupRefreshSession(context.Context, string) (store.AdminUser, error)
	RevokeRefreshSession(context.Context, string) error
	RevokeAccessToken(context.Context, string, time.Time) error
	IsAccessTokenRevoked(context.Context, string) (bool, error)
	ListSectors(ctx context.Context, onlyActive, onlyFeatured bool) ([]store.Sector, error)
	GetSector(context.Context, string) (store.Sector, error)
	GetSectorBySlug(context.Context, string) (store.Sector, error)
	InsertSector(context.Context, store.Sector) error
	UpdateSector(context.Context, store.Sector) (bool, error)
	DeleteSector(context.Context, string) (bool, error)
	MaxSectorSortOrder(context.Context) (int, error)
	UpdateSectorSortOrders(context.Context, []store.SortOrderUpdate) error
	ListCaseStudies(ctx context.Context, onlyPublished bool) ([]store.CaseStudy, error)
	GetCaseStudy(context.Context, string) (store.CaseStudy, error)
	GetCaseStudyBySlug(context.Context, string) (store.CaseStudy, error)
	InsertCaseStudy(context.Context, store.CaseStudy) error
	UpdateCaseStudy(context.Context, store.CaseStudy) (bool, error)
	DeleteCaseStudy(context.Context, string) (bool, error)
	MaxCaseStudySortOrder(context.Context) (int, error)
	UpdateCaseStudySortOrders(context.Context, []store.SortOrderUpdate) error
	GetSettings(context.Context) (store.GlobalSettings, error)
	UpdateSettings(context.Context, store.GlobalSettings) error
	InsertContactSubmission(context.Context, store.ContactSubmission) error
	ListContactSubmissions(context.Context, int) ([]store.ContactSubmission, error)
}

// refreshStore holds opaque refresh tokens by hash. Redis-backed when
// available, postgres otherwise.
type refreshStore interface {
	SaveRefreshSession(ctx context.Context, tokenHash string, admin store.AdminUser, expiresAt time.Time) error
	LookupRefreshSession(ctx context.Context, tokenHash string) (store.AdminUser, error)
	RevokeRefreshSession(ctx context.Context, tokenHash string) error
}

// pgRefreshStore is the fallback refresh session store when Redis is not
// configured.
type pgRefreshStore struct {
	store dataStore
}

func (p pgRefreshStore) SaveRefreshSession(ctx context.Context, tokenHash string, admin store.AdminUser, expiresAt time.Time) error {
	return p.store.SaveRefreshSession(ctx, tokenHash, admin.ID, expiresAt)
}

func (p pgRefreshStore) LookupRefreshSession(ctx context.Context, tokenHash string) (store.AdminUser, error) {
	return p.store.LookupRefreshSession(ctx, tokenHash)
}

func (p pgRefreshStore) RevokeRefreshSession(ctx context.Context, tokenHash string) error {
	return p.store.RevokeRefreshSession(ctx, tokenHash)
}

type readCache interface {
	Get(ctx context.Context, collection, view string, target any) error
	Set(ctx context.Context, collection, view string, value any) error
	Invalidate(ctx context.Context, collection string) error
}

type imageStorage interface {
	OptimizeAndStore(ctx context.Context, data []byte, filename, folder string) (string, error)
}

type mailer interface {
	IsConfigured() bool
	SendContactConfirmation(ctx context.Context, to, firstName, lastName string) error
	SendContactNotification(ctx context.Context, data email.ContactNotificationData) error
}

type copywriter interface {
	GenerateSEO(ctx context.Context, title, description, content, contentType string) (aicopy.SEOResult, error)
	GenerateSectorContent(ctx context.Context, title, description string) (aicopy.SectorContent, error)
}

type Service struct {
	cfg      config.Config
	store    dataStore
	sessions refreshStore
	cache    readCache
	images   imageStorage
	mail     mailer
	ai       copywriter
}

func New(cfg config.Config, dataStore *store.PostgresStore) *Service {
	return newService(cfg, dataStore)
}

func newService(cfg config.Config, dataStore dataStore) *Service {
	return &Service{
		cfg:      cfg,
		store:    dataStore,
		sessions: pgRefreshStore{store: dataStore},
	}
}

// SetSessionStore swaps the refresh session store, typically for Redis.
func (s *Service) SetSessionStore(sessions refreshStore) {
	s.sessions = sessions
}

// SetCache enables the public read cache.
func (s *Service) SetCache(rc readCache) {
	s.cache = rc
}

// SetImageStorage enables the upload pipeline.
func (s *Service) SetImageStorage(images imageStorage) {
	s.images = images
}

// SetMailer enables contact form emails.
func (s *Service) SetMailer(m mailer) {
	s.mail = m
}

// SetCopywriter enables the AI generation endpoints.
func (s *Service) SetCopywriter(c copywriter) {
	s.ai = c
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// Bootstrap prepares a fresh database: the admin account, the settings
// singleton, and optionally the launch content.
func (s *Service) Bootstrap(ctx context.Context) error {
	count, err := s.store.CountAdminUsers(ctx)
	if err != nil {
		return err
	}
	if count == 0 && s.cfg.AdminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if err := s.store.InsertAdminUser(ctx, store.AdminUser{
			ID:           util.NewID("adm"),
			Email:        strings.ToLower(strings.TrimSpace(s.cfg.AdminEmail)),
			DisplayName:  s.cfg.AdminName,
			PasswordHash: string(hash),
		}); err != nil {
			return err
		}
		log.Printf(`{"msg":"bootstrap_admin_created","email":"%s"}`, s.cfg.AdminEmail)
	}

	// GetSettings creates the singleton row when absent.
	if _, err := s.store.GetSettings(ctx); err != nil {
		return err
	}

	if !s.cfg.SeedContent {
		return nil
	}
	return s.seedContent(ctx)
}

func (s *Service) seedContent(ctx context.Context) error {
	sectors, err := s.store.ListSectors(ctx, false, false)
	if err != nil {
		return err
	}
	if len(sectors) == 0 {
		for i, seed := range seedSectors {
			seed.ID = util.NewID("sec")
			seed.SortOrder = i + 1
			seed.IsActive = true
			if err := s.store.InsertSector(ctx, seed); err != nil {
				return err
			}
		}
	}

	studies, err := s.store.ListCaseStudies(ctx, false)
	if err != nil {
		return err
	}
	if len(studies) == 0 {
		for i, seed := range seedCaseStudies {
			seed.ID = util.NewID("cs")
			seed.SortOrder = i + 1
			seed.IsPublished = true
			seed.Images = "[]"
			if err := s.store.InsertCaseStudy(ctx, seed); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Service) Login(ctx context.Context, emailAddr, password string) (Session, error) {
	admin, err := s.store.GetAdminByEmail(ctx, strings.TrimSpace(emailAddr))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, domainError(http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
		}
		return Session{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return Session{}, domainError(http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
	}
	return s.issueSession(ctx, admin)
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	tokenHash := auth.HashToken(refreshToken)
	admin, err := s.sessions.LookupRefreshSession(ctx, tokenHash)
	if err != nil {
		return Session{}, err
	}
	if err := s.sessions.RevokeRefreshSession(ctx, tokenHash); err != nil {
		return Session{}, err
	}
	return s.issueSession(ctx, admin)
}

func (s *Service) issueSession(ctx context.Context, admin store.AdminUser) (Session, error) {
	now := time.Now()
	expiresAt := now.Add(s.cfg.AccessTTL)
	jti := util.NewID("jti")

	token, err := auth.IssueToken([]byte(s.cfg.TokenSecret), auth.Claims{
		Sub:   admin.ID,
		Email: admin.Email,
		Name:  admin.DisplayName,
		JTI:   jti,
		Exp:   expiresAt.Unix(),
	})
	if err != nil {
		return Session{}, err
	}

	refresh := util.NewID("rft") + util.NewID("")
	refreshExpires := now.Add(s.cfg.RefreshTTL)
	if err := s.sessions.SaveRefreshSession(ctx, auth.HashToken(refresh), admin, refreshExpires); err != nil {
		return Session{}, err
	}

	return Session{
		Token:        token,
		RefreshToken: refresh,
		AdminID:      admin.ID,
		Email:        admin.Email,
		Name:         admin.DisplayName,
		JTI:          jti,
		ExpiresAt:    expiresAt,
	}, nil
}

func (s *Service) SessionFromToken(ctx context.Context, token string) (Session, error) {
	claims, err := auth.ParseToken([]byte(s.cfg.TokenSecret), token)
	if err != nil {
		return Session{}, err
	}
	revoked, err := s.store.IsAccessTokenRevoked(ctx, claims.JTI)
	if err != nil {
		return Session{}, err
	}
	if revoked {
		return Session{}, auth.ErrInvalidToken
	}

	admin, err := s.store.GetAdminByID(ctx, claims.Sub)
	if err != nil {
		return Session{}, err
	}

	return Session{
		Token:     token,
		AdminID:   admin.ID,
		Email:     admin.Email,
		Name:      admin.DisplayName,
		JTI:       claims.JTI,
		ExpiresAt: time.Unix(claims.Exp, 0),
	}, nil
}

func (s *Service) Logout(ctx context.Context, session Session, refreshToken string) error {
	if session.JTI != "" {
		_ = s.store.RevokeAccessToken(ctx, session.JTI, session.ExpiresAt)
	}
	if refreshToken != "" {
		_ = s.sessions.RevokeRefreshSession(ctx, auth.HashToken(refreshToken))
	}
	return nil
}

// invalidate drops the cached public views of a collection. Best effort: a
// failed invalidation only extends staleness until the TTL.
func (s *Service) invalidate(ctx context.Context, collection string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, collection); err != nil {
		log.Printf(`{"msg":"cache_invalidate_failed","collection":"%s","error":"%s"}`, collection, err)
	}
}

// PublicSectors lists active sectors for the public site, featured subset
// optional. Store failures degrade to an empty list so the site keeps
// rendering.
func (s *Service) PublicSectors(ctx context.Context, featuredOnly bool) []map[string]any {
	view := "all"
	if featuredOnly {
		view = "featured"
	}
	if s.cache != nil {
		var cached []map[string]any
		if err := s.cache.Get(ctx, cache.CollectionSectors, view, &cached); err == nil {
			return cached
		}
	}

	sectors, err := s.store.ListSectors(ctx, true, featuredOnly)
	if err != nil {
		log.Printf(`{"msg":"public_sectors_failed","error":"%s"}`, err)
		return []map[string]any{}
	}

	items := make([]map[string]any, 0, len(sectors))
	for _, sector := range sectors {
		items = append(items, sectorJSON(sector))
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.CollectionSectors, view, items); err != nil {
			log.Printf(`{"msg":"cache_set_failed","collection":"sectors","error":"%s"}`, err)
		}
	}
	return items
}

// PublicSectorBySlug resolves a public sector page. Inactive sectors are
// indistinguishable from missing ones.
func (s *Service) PublicSectorBySlug(ctx context.Context, slug string) (map[string]any, error) {
	sector, err := s.store.GetSectorBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !sector.IsActive {
		return nil, sql.ErrNoRows
	}
	return sectorJSON(sector), nil
}

func (s *Service) AdminSectors(ctx context.Context) ([]map[string]any, error) {
	sectors, err := s.store.ListSectors(ctx, false, false)
	if err != nil {
		return nil, err
	}
	items := make([]map[string]any, 0, len(sectors))
	for _, sector := range sectors {
		items = append(items, sectorJSON(sector))
	}
	return items, nil
}

func validateSectorInput(input SectorInput) (SectorInput, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Slug = strings.TrimSpace(input.Slug)
	input.Description = strings.TrimSpace(input.Description)

	missing := []string{}
	if input.Title == "" {
		missing = append(missing, "title")
	}
	if input.Slug == "" {
		missing = append(missing, "slug")
	}
	if input.Description == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return input, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "title, slug and description are required", map[string]any{"missing": missing})
	}
	return input, nil
}

func (s *Service) CreateSector(ctx context.Context, input SectorInput) (map[string]any, error) {
	input, err := validateSectorInput(input)
	if err != nil {
		return nil, err
	}

	max, err := s.store.MaxSectorSortOrder(ctx)
	if err != nil {
		return nil, err
	}

	sector := store.Sector{
		ID:              util.NewID("sec"),
		Title:           input.Title,
		Slug:            input.Slug,
		Description:     input.Description,
		Content:         input.Content,
		FeaturedImage:   input.FeaturedImage,
		MetaTitle:       input.MetaTitle,
		MetaDescription: input.MetaDescription,
		SortOrder:       ordering.Next(max),
		IsActive:        boolOr(input.IsActive, true),
		IsFeatured:      boolOr(input.IsFeatured, false),
	}
	if err := s.store.InsertSector(ctx, sector); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, domainError(http.StatusConflict, "CONFLICT", "slug already in use", nil)
		}
		return nil, err
	}

	s.invalidate(ctx, cache.CollectionSectors)
	return sectorJSON(sector), nil
}

func (s *Service) UpdateSector(ctx context.Context, sectorID string, input SectorInput) (map[string]any, error) {
	input, err := validateSectorInput(input)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.GetSector(ctx, sectorID)
	if err != nil {
		return nil, err
	}

	sector := existing
	sector.Title = input.Title
	sector.Slug = input.Slug
	sector.Description = input.Description
	sector.Content = input.Content
	sector.FeaturedImage = input.FeaturedImage
	sector.MetaTitle = input.MetaTitle
	sector.MetaDescription = input.MetaDescription
	sector.IsActive = boolOr(input.IsActive, existing.IsActive)
	sector.IsFeatured = boolOr(input.IsFeatured, existing.IsFeatured)

	updated, err := s.store.UpdateSector(ctx, sector)
	if err != nil {
		if store.IsUniqueViolation(err) {
			return nil, domainError(http.StatusConflict, "CONFLICT", "slug already in use", nil)
		}
		return nil, err
	}
	if !updated {
		return nil, sql.ErrNoRows
	}

	s.invalidate(ctx, cache.CollectionSectors)
	return sectorJSON(sector), nil
}

// DeleteSector removes the record immediately. Surviving siblings keep
// their ranks; the gap persists until the next explicit reorder.
func (s *Service) DeleteSector(ctx context.Context, sectorID string) error {
	deleted, err := s.store.DeleteSector(ctx, sectorID)
	if err != nil {
		return err
	}
	if !deleted {
		return sql.ErrNoRows
	}
	s.invalidate(ctx, cache.CollectionSectors)
	return nil
}

// ReorderSectors persists a full ordered id list as ranks 1..N. The list
// must be a permutation of the current collection.
func (s *Service) ReorderSectors(ctx context.Context, orderedIDs []string) error {
	current, err := s.store.ListSectors(ctx, false, false)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(current))
	for _, sector := range current {
		known[sector.ID] = true
	}
	updates, err := rankAssignment(orderedIDs, known)
	if err != nil {
		return err
	}
	if err := s.store.UpdateSectorSortOrders(ctx, updates); err != nil {
		return err
	}
	s.invalidate(ctx, cache.CollectionSectors)
	return nil
}

// MoveSector relocates one sector to targetIndex and renumbers the
// collection server-side.
func (s *Service) MoveSector(ctx context.Context, movedID string, targetIndex int) error {
	current, err := s.store.ListSectors(ctx, false, false)
	if err != nil {
		return err
	}
	ranked := make([]ordering.Ranked, 0, len(current))
	for _, sector := range current {
		ranked = append(ranked, ordering.Ranked{ID: sector.ID, SortOrder: sector.SortOrder})
	}
	moved, err := ordering.Move(ranked, movedID, targetIndex)
	if err != nil {
		if errors.Is(err, ordering.ErrUnknownID) {
			return domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "movedId is not in the collection", nil)
		}
		return err
	}
	updates := make([]store.SortOrderUpdate, 0, len(moved))
	for _, item := range moved {
		updates = append(updates, store.SortOrderUpdate{ID: item.ID, SortOrder: item.SortOrder})
	}
	if err := s.store.UpdateSectorSortOrders(ctx, updates); err != nil {
		return err
	}
	s.invalidate(ctx, cache.CollectionSectors)
	return nil
}

// rankAssignment turns an ordered id list into dense 1..N updates after
// checking it is a permutation of the known collection.
func rankAssignment(orderedIDs []string, known map[string]bool) ([]store.SortOrderUpdate, error) {
	if len(orderedIDs) != len(known) {
		return nil, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "orderedIds must list every item exactly once", nil)
	}
	seen := make(map[string]bool, len(orderedIDs))
	updates := make([]store.SortOrderUpdate, 0, len(orderedIDs))
	for i, id := range orderedIDs {
		if !known[id] {
			return nil, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "orderedIds contains an unknown id", map[string]any{"id": id})
		}
		if seen[id] {
			return nil, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "orderedIds contains a duplicate id", map[string]any{"id": id})
		}
		seen[id] = true
		updates = append(updates, store.SortOrderUpdate{ID: id, SortOrder: i + 1})
	}
	return updates, nil
}

// PublicCaseStudies lists published case studies, degrading to an empty
// list on store failure.
func (s *Service) PublicCaseStudies(ctx context.Context) []map[string]any {
	if s.cache != nil {
		var cached []map[string]any
		if err := s.cache.Get(ctx, cache.CollectionCaseStudies, "all", &cached); err == nil {
			return cached
		}
	}

	studies, err := s.store.ListCaseStudies(ctx, true)
	if err != nil {
		log.Printf(`{"msg":"public_case_studies_failed","error":"%s"}`, err)
		return []map[string]any{}
	}

	items := make([]map[string]any, 0, len(studies))
	for _, study := range studies {
		items = append(items, caseStudyJSON(study))
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.CollectionCaseStudies, "all", items); err != nil {
			log.Printf(`{"msg":"cache_set_failed","collection":"case-studies","error":"%s"}`, err)
		}
	}
	return items
}

func (s *Service) PublicCaseStudyBySlug(ctx context.Context, slug string) (map[string]any, error) {
	study, err := s.store.GetCaseStudyBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !study.IsPublished {
		return nil, sql.ErrNoRows
	}
	return caseStudyJSON(study), nil
}

func (s *Service) AdminCaseStudies(ctx context.Context) ([]map[string]any, error) {
	studies, err := s.store.ListCaseStudies(ctx, false)
	if err != nil {
		return nil, err
	}
	items := make([]map[string]any, 0, len(studies))
	for _, study := range studies {
		items = append(items, caseStudyJSON(study))
	}
	return items, nil
}

func validateCaseStudyInput(input CaseStudyInput) (CaseStudyInput, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Slug = strings.TrimSpace(input.Slug)
	input.Description = strings.TrimSpace(input.Description)

	missing := []string{}
	if input.Title == "" {
		missing = append(missing, "title")
	}
	if input.Slug == "" {
		missing = append(missing, "slug")
	}
	if input.Description == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return input, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "title, slug and description are required", map[string]any{"missing": missing})
	}
	return input, nil
}

func (s *Service) CreateCaseStudy(ctx context.Context, input CaseStudyInput) (map[string]any, error) {
	input, err := validateCaseStudyInput(input)
	if err != nil {
		return nil, err
	}

	max, err := s.store.MaxCaseStudySortOrder(ctx)
	if err != nil {
		return nil, err
	}

	study := store.CaseStudy{
		ID:              util.NewID("cs"),
		Title:           input.Title,
		Slug:            input.Slug,
		Description:     input.Description,
		Content:         input.Content,
		ClientName:      input.ClientName,
		Industry:        input.Industry,
		Technologies:    input.Technologies,
		Challenge:       input.Challenge,
		Solution:        input.Solution,
		Results:         input.Results,
		Category:        input.Category,
		FeaturedImage:   input.FeaturedImage,
		Logo:            input.Logo,
		Images:          encodeImages(input.Images),
		MetaTitle:       input.MetaTitle,
		MetaDescription: input.MetaDescription,
		SortOrder:       ordering.Next(max),
		IsPublished:     boolOr(input.IsPublished, false),
	}
	if err := s.store.InsertCaseStudy(ctx, study); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, domainError(http.StatusConflict, "CONFLICT", "slug already in use", nil)
		}
		return nil, err
	}

	s.invalidate(ctx, cache.CollectionCaseStudies)
	return caseStudyJSON(study), nil
}

func (s *Service) UpdateCaseStudy(ctx context.Context, studyID string, input CaseStudyInput) (map[string]any, error) {
	input, err := validateCaseStudyInput(input)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.GetCaseStudy(ctx, studyID)
	if err != nil {
		return nil, err
	}

	study := existing
	study.Title = input.Title
	study.Slug = input.Slug
	study.Description = input.Description
	study.Content = input.Content
	study.ClientName = input.ClientName
	study.Industry = input.Industry
	study.Technologies = input.Technologies
	study.Challenge = input.Challenge
	study.Solution = input.Solution
	study.Results = input.Results
	study.Category = input.Category
	study.FeaturedImage = input.FeaturedImage
	study.Logo = input.Logo
	study.Images = encodeImages(input.Images)
	study.MetaTitle = input.MetaTitle
	study.MetaDescription = input.MetaDescription
	study.IsPublished = boolOr(input.IsPublished, existing.IsPublished)

	updated, err := s.store.UpdateCaseStudy(ctx, study)
	if err != nil {
		if store.IsUniqueViolation(err) {
			return nil, domainError(http.StatusConflict, "CONFLICT", "slug already in use", nil)
		}
		return nil, err
	}
	if !updated {
		return nil, sql.ErrNoRows
	}

	s.invalidate(ctx, cache.CollectionCaseStudies)
	return caseStudyJSON(study), nil
}

func (s *Service) DeleteCaseStudy(ctx context.Context, studyID string) error {
	deleted, err := s.store.DeleteCaseStudy(ctx, studyID)
	if err != nil {
		return err
	}
	if !deleted {
		return sql.ErrNoRows
	}
	s.invalidate(ctx, cache.CollectionCaseStudies)
	return nil
}

func (s *Service) ReorderCaseStudies(ctx context.Context, orderedIDs []string) error {
	current, err := s.store.ListCaseStudies(ctx, false)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(current))
	for _, study := range current {
		known[study.ID] = true
	}
	updates, err := rankAssignment(orderedIDs, known)
	if err != nil {
		return err
	}
	if err := s.store.UpdateCaseStudySortOrders(ctx, updates); err != nil {
		return err
	}
	s.invalidate(ctx, cache.CollectionCaseStudies)
	return nil
}

func (s *Service) MoveCaseStudy(ctx context.Context, movedID string, targetIndex int) error {
	current, err := s.store.ListCaseStudies(ctx, false)
	if err != nil {
		return err
	}
	ranked := make([]ordering.Ranked, 0, len(current))
	for _, study := range current {
		ranked = append(ranked, ordering.Ranked{ID: study.ID, SortOrder: study.SortOrder})
	}
	moved, err := ordering.Move(ranked, movedID, targetIndex)
	if err != nil {
		if errors.Is(err, ordering.ErrUnknownID) {
			return domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "movedId is not in the collection", nil)
		}
		return err
	}
	updates := make([]store.SortOrderUpdate, 0, len(moved))
	for _, item := range moved {
		updates = append(updates, store.SortOrderUpdate{ID: item.ID, SortOrder: item.SortOrder})
	}
	if err := s.store.UpdateCaseStudySortOrders(ctx, updates); err != nil {
		return err
	}
	s.invalidate(ctx, cache.CollectionCaseStudies)
	return nil
}

// PublicSettings serves the site chrome's contact details, degrading to an
// empty object on store failure.
func (s *Service) PublicSettings(ctx context.Context) map[string]any {
	if s.cache != nil {
		var cached map[string]any
		if err := s.cache.Get(ctx, cache.CollectionSettings, "global", &cached); err == nil {
			return cached
		}
	}

	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		log.Printf(`{"msg":"public_settings_failed","error":"%s"}`, err)
		return map[string]any{}
	}

	payload := settingsJSON(settings)
	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.CollectionSettings, "global", payload); err != nil {
			log.Printf(`{"msg":"cache_set_failed","collection":"settings","error":"%s"}`, err)
		}
	}
	return payload
}

func (s *Service) AdminSettings(ctx context.Context) (map[string]any, error) {
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	return settingsJSON(settings), nil
}

func (s *Service) UpdateSettings(ctx context.Context, input SettingsInput) (map[string]any, error) {
	input.Email = strings.TrimSpace(input.Email)
	if input.Email != "" && !emailPattern.MatchString(input.Email) {
		return nil, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "email format is invalid", nil)
	}

	settings := store.GlobalSettings{
		ID:        "global",
		Email:     input.Email,
		Phone:     strings.TrimSpace(input.Phone),
		Address:   strings.TrimSpace(input.Address),
		Facebook:  strings.TrimSpace(input.Facebook),
		Linkedin:  strings.TrimSpace(input.Linkedin),
		Twitter:   strings.TrimSpace(input.Twitter),
		Instagram: strings.TrimSpace(input.Instagram),
		Youtube:   strings.TrimSpace(input.Youtube),
	}
	if err := s.store.UpdateSettings(ctx, settings); err != nil {
		return nil, err
	}

	s.invalidate(ctx, cache.CollectionSettings)
	return settingsJSON(settings), nil
}

// SubmitContact records a contact form submission and then sends the
// confirmation and notification emails. The database write is the durable
// record; mail failures are logged and never fail the submission.
func (s *Service) SubmitContact(ctx context.Context, input ContactInput) error {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = strings.TrimSpace(input.Email)
	input.Message = strings.TrimSpace(input.Message)

	missing := []string{}
	if input.FirstName == "" {
		missing = append(missing, "firstName")
	}
	if input.LastName == "" {
		missing = append(missing, "lastName")
	}
	if input.Email == "" {
		missing = append(missing, "email")
	}
	if input.Message == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "firstName, lastName, email and message are required", map[string]any{"missing": missing})
	}
	if !emailPattern.MatchString(input.Email) {
		return domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "email format is invalid", nil)
	}

	submission := store.ContactSubmission{
		ID:        util.NewID("sub"),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Company:   strings.TrimSpace(input.Company),
		Phone:     strings.TrimSpace(input.Phone),
		Email:     input.Email,
		Message:   input.Message,
	}
	if err := s.store.InsertContactSubmission(ctx, submission); err != nil {
		return err
	}

	if s.mail != nil && s.mail.IsConfigured() {
		if err := s.mail.SendContactConfirmation(ctx, submission.Email, submission.FirstName, submission.LastName); err != nil {
			log.Printf(`{"msg":"contact_confirmation_failed","error":"%s"}`, err)
		}
		if err := s.mail.SendContactNotification(ctx, email.ContactNotificationData{
			FirstName:  submission.FirstName,
			LastName:   submission.LastName,
			Email:      submission.Email,
			Phone:      submission.Phone,
			Company:    submission.Company,
			Message:    submission.Message,
			ReceivedAt: time.Now().Format("02/01/2006 15:04"),
		}); err != nil {
			log.Printf(`{"msg":"contact_notification_failed","error":"%s"}`, err)
		}
	}
	return nil
}

func (s *Service) ContactSubmissions(ctx context.Context, limit int) ([]map[string]any, error) {
	submissions, err := s.store.ListContactSubmissions(ctx, limit)
	if err != nil {
		return nil, err
	}
	items := make([]map[string]any, 0, len(submissions))
	for _, submission := range submissions {
		items = append(items, map[string]any{
			"id":        submission.ID,
			"firstName": submission.FirstName,
			"lastName":  submission.LastName,
			"company":   submission.Company,
			"phone":     submission.Phone,
			"email":     submission.Email,
			"message":   submission.Message,
			"createdAt": submission.CreatedAt.Format(time.RFC3339),
		})
	}
	return items, nil
}

// Sitemap lists the public URLs: the static pages plus every visible
// sector and case study.
func (s *Service) Sitemap(ctx context.Context) map[string]any {
	base := strings.TrimSuffix(s.cfg.SiteBaseURL, "/")
	urls := []string{base + "/", base + "/services"}

	sectors, err := s.store.ListSectors(ctx, true, false)
	if err != nil {
		log.Printf(`{"msg":"sitemap_sectors_failed","error":"%s"}`, err)
	} else {
		for _, sector := range sectors {
			urls = append(urls, base+"/sectors/"+sector.Slug)
		}
	}

	studies, err := s.store.ListCaseStudies(ctx, true)
	if err != nil {
		log.Printf(`{"msg":"sitemap_case_studies_failed","error":"%s"}`, err)
	} else {
		for _, study := range studies {
			urls = append(urls, base+"/case-studies/"+study.Slug)
		}
	}

	return map[string]any{"urls": urls}
}

// UploadImage optimizes and stores one uploaded image, returning its
// public URL. folder selects the bucket prefix ("sectors" or
// "case-studies").
func (s *Service) UploadImage(ctx context.Context, data []byte, filename, folder string) (string, error) {
	if s.images == nil {
		return "", domainError(http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "Image storage not configured", nil)
	}
	if len(data) == 0 {
		return "", domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "file is empty", nil)
	}
	url, err := s.images.OptimizeAndStore(ctx, data, filename, folder)
	if err != nil {
		if errors.Is(err, images.ErrInvalidImage) {
			return "", domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "file is not a supported image", nil)
		}
		return "", err
	}
	return url, nil
}

func (s *Service) GenerateSEO(ctx context.Context, title, description, content, contentType string) (map[string]any, error) {
	if s.ai == nil {
		return nil, domainError(http.StatusServiceUnavailable, "AI_UNAVAILABLE", "AI copywriting not configured", nil)
	}
	if strings.TrimSpace(title) == "" {
		return nil, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "title is required", nil)
	}
	result, err := s.ai.GenerateSEO(ctx, title, description, content, contentType)
	if err != nil {
		return nil, domainError(http.StatusBadGateway, "AI_ERROR", err.Error(), nil)
	}
	return map[string]any{
		"metaTitle":       result.MetaTitle,
		"metaDescription": result.MetaDescription,
	}, nil
}

func (s *Service) GenerateSectorContent(ctx context.Context, title, description string) (map[string]any, error) {
	if s.ai == nil {
		return nil, domainError(http.StatusServiceUnavailable, "AI_UNAVAILABLE", "AI copywriting not configured", nil)
	}
	if strings.TrimSpace(title) == "" {
		return nil, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "title is required", nil)
	}
	result, err := s.ai.GenerateSectorContent(ctx, title, description)
	if err != nil {
		return nil, domainError(http.StatusBadGateway, "AI_ERROR", err.Error(), nil)
	}

	itemsJSON := func(items []aicopy.ContentItem) []map[string]any {
		out := make([]map[string]any, 0, len(items))
		for _, item := range items {
			out = append(out, map[string]any{"title": item.Title, "description": item.Description})
		}
		return out
	}
	return map[string]any{
		"executiveSummary": result.ExecutiveSummary,
		"challenges":       itemsJSON(result.Challenges),
		"solutions":        itemsJSON(result.Solutions),
		"benefits":         itemsJSON(result.Benefits),
		"futureOutlook":    result.FutureOutlook,
	}, nil
}

func sectorJSON(sector store.Sector) map[string]any {
	return map[string]any{
		"id":              sector.ID,
		"title":           sector.Title,
		"slug":            sector.Slug,
		"description":     sector.Description,
		"content":         sector.Content,
		"featuredImage":   sector.FeaturedImage,
		"metaTitle":       sector.MetaTitle,
		"metaDescription": sector.MetaDescription,
		"sortOrder":       sector.SortOrder,
		"isActive":        sector.IsActive,
		"isFeatured":      sector.IsFeatured,
	}
}

func caseStudyJSON(study store.CaseStudy) map[string]any {
	return map[string]any{
		"id":              study.ID,
		"title":           study.Title,
		"slug":            study.Slug,
		"description":     study.Description,
		"content":         study.Content,
		"clientName":      study.ClientName,
		"industry":        study.Industry,
		"technologies":    study.Technologies,
		"challenge":       study.Challenge,
		"solution":        study.Solution,
		"results":         study.Results,
		"category":        study.Category,
		"featuredImage":   study.FeaturedImage,
		"logo":            study.Logo,
		"images":          decodeImages(study.Images),
		"metaTitle":       study.MetaTitle,
		"metaDescription": study.MetaDescription,
		"sortOrder":       study.SortOrder,
		"isPublished":     study.IsPublished,
	}
}

func settingsJSON(settings store.GlobalSettings) map[string]any {
	return map[string]any{
		"email":     settings.Email,
		"phone":     settings.Phone,
		"address":   settings.Address,
		"facebook":  settings.Facebook,
		"linkedin":  settings.Linkedin,
		"twitter":   settings.Twitter,
		"instagram": settings.Instagram,
		"youtube":   settings.Youtube,
	}
}

func encodeImages(urls []string) string {
	if len(urls) == 0 {
		return "[]"
	}
	raw, err := json.Marshal(urls)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

func decodeImages(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	var urls []string
	if err := json.Unmarshal([]byte(raw), &urls); err != nil {
		return []string{}
	}
	return urls
}

func boolOr(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}
