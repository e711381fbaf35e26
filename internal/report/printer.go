package report

import (
	"os"

	"github.com/pkg/browser"
	"golang.org/x/exp/slog"
)

// Printer - внешняя команда с побочным эффектом: показать документ
// пользователю для печати. Результат не возвращается.
type Printer interface {
	Print(doc []byte)
}

// BrowserPrinter сохраняет документ во временный файл и открывает его
// программой по умолчанию. Ошибки только логируются.
type BrowserPrinter struct {
	dir  string
	open func(path string) error
	log  *slog.Logger
}

func NewBrowserPrinter(log *slog.Logger) *BrowserPrinter {
	return &BrowserPrinter{
		dir:  os.TempDir(),
		open: browser.OpenFile,
		log:  log.With("component", "printer"),
	}
}

func (p *BrowserPrinter) Print(doc []byte) {
	f, err := os.CreateTemp(p.dir, "query-summary-*.html")
	if err != nil {
		p.log.Error("failed to create print file", "error", err)
		return
	}

	if _, err := f.Write(doc); err != nil {
		_ = f.Close()
		p.log.Error("failed to write print file", "path", f.Name(), "error", err)
		return
	}
	if err := f.Close(); err != nil {
		p.log.Error("failed to close print file", "path", f.Name(), "error", err)
		return
	}

	if err := p.open(f.Name()); err != nil {
		p.log.Warn("failed to open print view", "path", f.Name(), "error", err)
		return
	}

	p.log.Debug("print view opened", "path", f.Name())
}
