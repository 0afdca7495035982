// Package parser turns Ruby source into the generic syntax tree consumed by
// the extractor.
package parser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/ruby"

	"github.com/pthm/solidscore/internal/syntax"
)

const (
	// DefaultMaxFileSize is the largest source the parser accepts (10MB).
	DefaultMaxFileSize = 10 * 1024 * 1024

	// WarnFileSize triggers a warning log before parsing (1MB).
	WarnFileSize = 1 * 1024 * 1024
)

var (
	// ErrSyntax indicates the source does not parse as Ruby.
	ErrSyntax = errors.New("syntax error")

	// ErrFileTooLarge indicates the source exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrInvalidContent indicates the source is not valid UTF-8.
	ErrInvalidContent = errors.New("invalid content")
)

// Option configures a RubyParser.
type Option func(*RubyParser)

// WithMaxFileSize sets the maximum source size in bytes.
func WithMaxFileSize(bytes int64) Option {
	return func(p *RubyParser) {
		if bytes > 0 {
			p.maxFileSize = bytes
		}
	}
}

// RubyParser parses Ruby source with tree-sitter. A new tree-sitter parser is
// created per call, so a RubyParser is safe for concurrent use.
type RubyParser struct {
	maxFileSize int64
}

// NewRubyParser creates a parser with the given options applied.
func NewRubyParser(opts ...Option) *RubyParser {
	p := &RubyParser{maxFileSize: DefaultMaxFileSize}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// IsRubyFile reports whether path names a Ruby source file.
func IsRubyFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".rb")
}

// ParseFile reads and parses the file at path.
func (p *RubyParser) ParseFile(ctx context.Context, path string) (*syntax.Node, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	root, err := p.Parse(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

// Parse parses Ruby source into a syntax tree rooted at a Program node.
func (p *RubyParser) Parse(ctx context.Context, content []byte) (*syntax.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse canceled before start: %w", err)
	}

	if int64(len(content)) > p.maxFileSize {
		return nil, fmt.Errorf("%w: size %d exceeds limit %d", ErrFileTooLarge, len(content), p.maxFileSize)
	}

	if len(content) > WarnFileSize {
		slog.Warn("parsing large file", slog.Int("size_bytes", len(content)))
	}

	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w: content is not valid UTF-8", ErrInvalidContent)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(ruby.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("%w: empty tree", ErrSyntax)
	}
	if root.HasError() {
		return nil, fmt.Errorf("%w: near line %d", ErrSyntax, firstErrorLine(root))
	}

	return newConverter(content).program(root), nil
}

// firstErrorLine returns the 1-based line of the first ERROR or missing node.
func firstErrorLine(n *sitter.Node) int {
	if n.Type() == "ERROR" || n.IsMissing() {
		return int(n.StartPoint().Row) + 1
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil || !child.HasError() && !child.IsMissing() {
			continue
		}
		return firstErrorLine(child)
	}
	return int(n.StartPoint().Row) + 1
}
