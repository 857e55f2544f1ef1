package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/term"
)

// ColorHandler 文字格式輸出，終端機時依等級加上 ANSI 顏色
//
// 顏色碼與內層輸出在同一把鎖內寫出，WithAttrs / WithGroup 的副本共用這把鎖。
type ColorHandler struct {
	slog.Handler
	out       io.Writer
	isColored bool
	mu        *sync.Mutex
}

// NewColorHandler 建構函數；out 為 nil 時寫到 stderr
func NewColorHandler(out io.Writer, opts *slog.HandlerOptions) *ColorHandler {
	if out == nil {
		out = os.Stderr
	}

	isColored := false
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		isColored = true
	}

	return &ColorHandler{
		Handler:   slog.NewTextHandler(out, opts),
		out:       out,
		isColored: isColored,
		mu:        &sync.Mutex{},
	}
}

// Handle 包住內層 handler 的輸出
func (h *ColorHandler) Handle(ctx context.Context, r slog.Record) error {
	if !h.isColored {
		return h.Handler.Handle(ctx, r)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	switch {
	case r.Level >= slog.LevelError:
		fmt.Fprint(h.out, "\033[31m")
	case r.Level >= slog.LevelWarn:
		fmt.Fprint(h.out, "\033[33m")
	case r.Level < slog.LevelInfo:
		fmt.Fprint(h.out, "\033[34m")
	}

	err := h.Handler.Handle(ctx, r)
	fmt.Fprint(h.out, "\033[0m")
	return err
}

// WithAttrs 保留顏色設定
func (h *ColorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ColorHandler{Handler: h.Handler.WithAttrs(attrs), out: h.out, isColored: h.isColored, mu: h.mu}
}

// WithGroup 保留顏色設定
func (h *ColorHandler) WithGroup(name string) slog.Handler {
	return &ColorHandler{Handler: h.Handler.WithGroup(name), out: h.out, isColored: h.isColored, mu: h.mu}
}
