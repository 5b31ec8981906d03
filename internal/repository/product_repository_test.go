package repository

import (
	"context"
	"testing"
	"time"

	"github.com/sandeepkv93/product-catalog-service/internal/domain"
)

// seedCatalog commits a small fixture set. Prices share a width so ordering
// and range comparisons behave the same under sqlite's textual storage of
// decimals as they do under a real numeric column.
func seedCatalog(t *testing.T, repo ProductRepository) {
	t.Helper()
	repo.AddRange([]*domain.Product{
		{Name: "Desk Lamp", Price: mustPrice(t, "25.00"), Description: "LED desk lamp", Category: "lighting", IsActive: true},
		{Name: "Floor Lamp", Price: mustPrice(t, "60.00"), Description: "tall floor lamp", Category: "lighting", IsActive: true},
		{Name: "Office Chair", Price: mustPrice(t, "85.00"), Description: "ergonomic chair", Category: "furniture", IsActive: true},
		{Name: "Standing Desk", Price: mustPrice(t, "40.00"), Description: "height adjustable", Category: "furniture", IsActive: false},
	})
	if _, err := repo.SaveChanges(context.Background()); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
}

func TestGetActiveProductsFiltersAndOrders(t *testing.T) {
	repo := NewProductRepository(newRepositoryDBForTest(t))
	seedCatalog(t, repo)

	products, err := repo.GetActiveProducts(context.Background())
	if err != nil {
		t.Fatalf("get active: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("active count = %d, want 3", len(products))
	}
	want := []string{"Desk Lamp", "Floor Lamp", "Office Chair"}
	for i, p := range products {
		if p.Name != want[i] {
			t.Fatalf("position %d: got %q want %q", i, p.Name, want[i])
		}
		if !p.IsActive {
			t.Fatalf("inactive product %q in active listing", p.Name)
		}
	}
}

func TestGetProductsByCategory(t *testing.T) {
	repo := NewProductRepository(newRepositoryDBForTest(t))
	seedCatalog(t, repo)

	products, err := repo.GetProductsByCategory(context.Background(), "furniture")
	if err != nil {
		t.Fatalf("by category: %v", err)
	}
	// The inactive desk must not appear even though it is furniture.
	if len(products) != 1 || products[0].Name != "Office Chair" {
		t.Fatalf("unexpected furniture listing: %+v", products)
	}
}

func TestGetProductsInPriceRangeIsInclusive(t *testing.T) {
	repo := NewProductRepository(newRepositoryDBForTest(t))
	seedCatalog(t, repo)

	products, err := repo.GetProductsInPriceRange(context.Background(), mustPrice(t, "25.00"), mustPrice(t, "60.00"))
	if err != nil {
		t.Fatalf("price range: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("range count = %d, want 2: %+v", len(products), products)
	}
	if products[0].Name != "Desk Lamp" || products[1].Name != "Floor Lamp" {
		t.Fatalf("expected ascending price order, got %q then %q", products[0].Name, products[1].Name)
	}
}

func TestSearchProducts(t *testing.T) {
	repo := NewProductRepository(newRepositoryDBForTest(t))
	seedCatalog(t, repo)
	ctx := context.Background()

	// Blank and whitespace-only terms list the active catalog.
	products, err := repo.SearchProducts(ctx, "   ")
	if err != nil {
		t.Fatalf("blank search: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("blank search count = %d, want 3", len(products))
	}

	// Case-insensitive substring match across name, description, category.
	products, err = repo.SearchProducts(ctx, "LAMP")
	if err != nil {
		t.Fatalf("name search: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("name search count = %d, want 2: %+v", len(products), products)
	}

	products, err = repo.SearchProducts(ctx, "ergonomic")
	if err != nil {
		t.Fatalf("description search: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Office Chair" {
		t.Fatalf("unexpected description match: %+v", products)
	}

	// The inactive desk matches "furniture" by category but stays hidden.
	products, err = repo.SearchProducts(ctx, "furniture")
	if err != nil {
		t.Fatalf("category search: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Office Chair" {
		t.Fatalf("unexpected category match: %+v", products)
	}

	products, err = repo.SearchProducts(ctx, "no such thing")
	if err != nil {
		t.Fatalf("miss search: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("expected no matches, got %+v", products)
	}
}

func TestProductNameExists(t *testing.T) {
	repo := NewProductRepository(newRepositoryDBForTest(t))
	seedCatalog(t, repo)
	ctx := context.Background()

	exists, err := repo.ProductNameExists(ctx, "desk lamp", nil)
	if err != nil {
		t.Fatalf("name exists: %v", err)
	}
	if !exists {
		t.Fatal("expected case-insensitive match on existing name")
	}

	// Soft-deleted rows keep occupying their name.
	exists, err = repo.ProductNameExists(ctx, "Standing Desk", nil)
	if err != nil {
		t.Fatalf("name exists inactive: %v", err)
	}
	if !exists {
		t.Fatal("expected inactive product to still hold its name")
	}

	owner, err := repo.FirstOrDefault(ctx, NameMatchesFold("Desk Lamp"))
	if err != nil || owner == nil {
		t.Fatalf("load owner: %v %+v", err, owner)
	}
	exists, err = repo.ProductNameExists(ctx, "DESK LAMP", &owner.ID)
	if err != nil {
		t.Fatalf("name exists excluding owner: %v", err)
	}
	if exists {
		t.Fatal("a row must not collide with its own name")
	}

	exists, err = repo.ProductNameExists(ctx, "Brand New", nil)
	if err != nil {
		t.Fatalf("name exists absent: %v", err)
	}
	if exists {
		t.Fatal("unexpected match for unused name")
	}
}

func TestGetProductWithDetails(t *testing.T) {
	repo := NewProductRepository(newRepositoryDBForTest(t))
	seedCatalog(t, repo)
	ctx := context.Background()

	owner, err := repo.FirstOrDefault(ctx, NameMatchesFold("Office Chair"))
	if err != nil || owner == nil {
		t.Fatalf("load fixture: %v %+v", err, owner)
	}

	got, err := repo.GetProductWithDetails(ctx, owner.ID)
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if got == nil || got.Name != "Office Chair" {
		t.Fatalf("unexpected details: %+v", got)
	}

	got, err = repo.GetProductWithDetails(ctx, 9999)
	if err != nil {
		t.Fatalf("details absent: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for absent product, got %+v", got)
	}
}

func TestListActivePaged(t *testing.T) {
	repo := NewProductRepository(newRepositoryDBForTest(t))
	seedCatalog(t, repo)
	ctx := context.Background()

	page, err := repo.ListActivePaged(ctx, PageRequest{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if page.Total != 3 || page.TotalPages != 2 || len(page.Items) != 2 {
		t.Fatalf("unexpected page 1: total=%d pages=%d items=%d", page.Total, page.TotalPages, len(page.Items))
	}
	if page.Items[0].Name != "Desk Lamp" || page.Items[1].Name != "Floor Lamp" {
		t.Fatalf("unexpected page 1 order: %q, %q", page.Items[0].Name, page.Items[1].Name)
	}

	page, err = repo.ListActivePaged(ctx, PageRequest{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Name != "Office Chair" {
		t.Fatalf("unexpected page 2: %+v", page.Items)
	}

	// Out-of-range requests normalize to defaults.
	page, err = repo.ListActivePaged(ctx, PageRequest{Page: 0, PageSize: -5})
	if err != nil {
		t.Fatalf("normalized page: %v", err)
	}
	if page.Page != DefaultPage || page.PageSize != DefaultPageSize {
		t.Fatalf("expected normalized request, got page=%d size=%d", page.Page, page.PageSize)
	}
}

func TestProductRepositoryStampsTimestamps(t *testing.T) {
	repo := NewProductRepository(newRepositoryDBForTest(t)).(*GormProductRepository)
	ctx := context.Background()

	frozen := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return frozen }

	p := &domain.Product{Name: "Widget", Price: mustPrice(t, "10.00"), IsActive: true}
	repo.Add(p)
	if _, err := repo.SaveChanges(ctx); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !p.CreatedAt.Equal(frozen) {
		t.Fatalf("CreatedAt = %v, want %v", p.CreatedAt, frozen)
	}
	if p.LastModified == nil || !p.LastModified.Equal(frozen) {
		t.Fatalf("LastModified = %v, want %v", p.LastModified, frozen)
	}

	// A caller-supplied CreatedAt survives; the stamp only fills the blank.
	preset := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	q := &domain.Product{Name: "Gadget", Price: mustPrice(t, "20.00"), CreatedAt: preset, IsActive: true}
	repo.Add(q)
	if _, err := repo.SaveChanges(ctx); err != nil {
		t.Fatalf("add preset: %v", err)
	}
	if !q.CreatedAt.Equal(preset) {
		t.Fatalf("preset CreatedAt overwritten: %v", q.CreatedAt)
	}

	later := frozen.Add(48 * time.Hour)
	repo.now = func() time.Time { return later }
	p.Description = "revised"
	repo.Update(p)
	if _, err := repo.SaveChanges(ctx); err != nil {
		t.Fatalf("update: %v", err)
	}
	if p.LastModified == nil || !p.LastModified.Equal(later) {
		t.Fatalf("LastModified after update = %v, want %v", p.LastModified, later)
	}
	if !p.CreatedAt.Equal(frozen) {
		t.Fatalf("CreatedAt changed on update: %v", p.CreatedAt)
	}
}
