package moderation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"corkboard/internal/api/dto"
	"corkboard/internal/database"
	"corkboard/internal/domain"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupWorkflowTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	if err := db.Exec("PRAGMA busy_timeout = 5000").Error; err != nil {
		t.Fatalf("set busy timeout: %v", err)
	}

	// One connection keeps concurrent writers from tripping sqlite's
	// shared-cache table locks; call interleaving is unaffected.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(
		&domain.Brand{},
		&domain.Comment{},
		&domain.BlockRule{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	database.DB = db

	t.Cleanup(func() {
		database.DB = nil
	})

	return db
}

func TestSubmitRoot_Gate(t *testing.T) {
	db := setupWorkflowTestDB(t)
	ctx := context.Background()

	if err := db.Create(&domain.Brand{BrandNm: "Sunrise Coffee"}).Error; err != nil {
		t.Fatalf("create brand: %v", err)
	}

	rule := domain.BlockRule{Pattern: "203.0.113.0/24", CreatedBy: "admin-1", Active: true}
	if err := database.CreateBlockRule(ctx, &rule); err != nil {
		t.Fatalf("create rule: %v", err)
	}

	req := dto.CreateCommentReq{Password: "abcd", Content: "hello"}

	t.Run("blocked address is rejected before any write", func(t *testing.T) {
		_, err := SubmitRoot(ctx, "Sunrise Coffee", "203.0.113.55", "agent", req)
		if !errors.Is(err, ErrBlocked) {
			t.Fatalf("SubmitRoot returned %v, want ErrBlocked", err)
		}

		var count int64
		if err := db.Model(&domain.Comment{}).Count(&count).Error; err != nil {
			t.Fatalf("count comments: %v", err)
		}
		if count != 0 {
			t.Fatalf("comment count = %d, want 0", count)
		}
	})

	t.Run("unblocked address goes through", func(t *testing.T) {
		comment, err := SubmitRoot(ctx, "Sunrise Coffee", "203.0.114.1", "agent", req)
		if err != nil {
			t.Fatalf("SubmitRoot returned %v", err)
		}
		if comment.IPAddress != "203.0.114.1" || comment.UserAgent != "agent" {
			t.Fatalf("stamped metadata = %q/%q", comment.IPAddress, comment.UserAgent)
		}
	})
}

func TestSubmitReply_Gate(t *testing.T) {
	db := setupWorkflowTestDB(t)
	ctx := context.Background()

	if err := db.Create(&domain.Brand{BrandNm: "Sunrise Coffee"}).Error; err != nil {
		t.Fatalf("create brand: %v", err)
	}

	req := dto.CreateCommentReq{Password: "abcd", Content: "hello"}
	root, err := SubmitRoot(ctx, "Sunrise Coffee", "192.0.2.1", "", req)
	if err != nil {
		t.Fatalf("SubmitRoot returned %v", err)
	}

	rule := domain.BlockRule{Pattern: "192.0.2.50", CreatedBy: "admin-1", Active: true}
	if err := database.CreateBlockRule(ctx, &rule); err != nil {
		t.Fatalf("create rule: %v", err)
	}

	if _, err := SubmitReply(ctx, root.ID, "192.0.2.50", "", req); !errors.Is(err, ErrBlocked) {
		t.Fatalf("SubmitReply returned %v, want ErrBlocked", err)
	}

	reply, err := SubmitReply(ctx, root.ID, "192.0.2.51", "", req)
	if err != nil {
		t.Fatalf("SubmitReply returned %v", err)
	}
	if reply.BrandNm != root.BrandNm {
		t.Fatalf("reply brand = %q, want %q", reply.BrandNm, root.BrandNm)
	}
}

func TestPromoteCommentIPToBlock(t *testing.T) {
	db := setupWorkflowTestDB(t)
	ctx := context.Background()

	if err := db.Create(&domain.Brand{BrandNm: "Sunrise Coffee"}).Error; err != nil {
		t.Fatalf("create brand: %v", err)
	}

	req := dto.CreateCommentReq{Password: "abcd", Content: "spam"}
	comment, err := SubmitRoot(ctx, "Sunrise Coffee", "198.51.100.77", "", req)
	if err != nil {
		t.Fatalf("SubmitRoot returned %v", err)
	}

	t.Run("unknown comment", func(t *testing.T) {
		_, err := PromoteCommentIPToBlock(ctx, "missing-id", "admin-1", "")
		if !errors.Is(err, database.ErrCommentNotFound) {
			t.Fatalf("PromoteCommentIPToBlock returned %v, want ErrCommentNotFound", err)
		}
	})

	t.Run("creates exact rule with default reason", func(t *testing.T) {
		rule, err := PromoteCommentIPToBlock(ctx, comment.ID, "admin-1", "")
		if err != nil {
			t.Fatalf("PromoteCommentIPToBlock returned %v", err)
		}
		if rule.Pattern != "198.51.100.77" || rule.CreatedBy != "admin-1" || !rule.Active {
			t.Fatalf("rule = %+v", rule)
		}
		if !strings.Contains(rule.Reason, comment.ID) {
			t.Fatalf("default reason %q does not reference the comment", rule.Reason)
		}

		blocked, err := database.IsBlocked(ctx, "198.51.100.77")
		if err != nil || !blocked {
			t.Fatalf("IsBlocked after promotion = (%v, %v), want (true, nil)", blocked, err)
		}
	})

	t.Run("second promotion reports already blocked", func(t *testing.T) {
		_, err := PromoteCommentIPToBlock(ctx, comment.ID, "admin-2", "")
		if !errors.Is(err, ErrAlreadyBlocked) {
			t.Fatalf("PromoteCommentIPToBlock returned %v, want ErrAlreadyBlocked", err)
		}
	})

	t.Run("deactivated rule allows re-promotion", func(t *testing.T) {
		err := db.Model(&domain.BlockRule{}).
			Where("pattern = ?", "198.51.100.77").
			Update("active", false).Error
		if err != nil {
			t.Fatalf("deactivate rule: %v", err)
		}

		rule, err := PromoteCommentIPToBlock(ctx, comment.ID, "admin-2", "repeat offender")
		if err != nil {
			t.Fatalf("PromoteCommentIPToBlock returned %v", err)
		}
		if rule.Reason != "repeat offender" {
			t.Fatalf("reason = %q", rule.Reason)
		}
	})
}

func TestPromoteCommentIPToBlock_Concurrent(t *testing.T) {
	db := setupWorkflowTestDB(t)
	ctx := context.Background()

	if err := db.Create(&domain.Brand{BrandNm: "Sunrise Coffee"}).Error; err != nil {
		t.Fatalf("create brand: %v", err)
	}

	req := dto.CreateCommentReq{Password: "abcd", Content: "spam"}
	comment, err := SubmitRoot(ctx, "Sunrise Coffee", "198.51.100.88", "", req)
	if err != nil {
		t.Fatalf("SubmitRoot returned %v", err)
	}

	const attempts = 4
	results := make([]error, attempts)

	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func(slot int) {
			defer wg.Done()
			_, results[slot] = PromoteCommentIPToBlock(ctx, comment.ID, "admin-1", "")
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrAlreadyBlocked):
			conflicts++
		default:
			t.Fatalf("unexpected promotion error: %v", err)
		}
	}
	if successes != 1 || conflicts != attempts-1 {
		t.Fatalf("successes=%d conflicts=%d, want 1/%d", successes, conflicts, attempts-1)
	}

	var activeRules int64
	err = db.Model(&domain.BlockRule{}).
		Where("pattern = ? AND active = ?", "198.51.100.88", true).
		Count(&activeRules).Error
	if err != nil {
		t.Fatalf("count rules: %v", err)
	}
	if activeRules != 1 {
		t.Fatalf("active rules = %d, want exactly 1", activeRules)
	}
}
