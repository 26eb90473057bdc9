package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/sitechat"
	"github.com/fwojciec/sitechat/sqlite"
)

// Crawler runs crawls in the foreground or in the background.
type Crawler interface {
	sitechat.CrawlService

	Crawl(ctx context.Context, websiteID string) (*sitechat.CrawlReport, error)
	Recrawl(ctx context.Context, websiteID string) (*sitechat.CrawlReport, error)
	Recover(ctx context.Context) (int, error)
	Close() error
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	DB        *sqlite.DB
	Websites  sitechat.WebsiteService
	Documents sitechat.DocumentService
	Users     sitechat.UserService
	Dialogues sitechat.DialogueService
	Crawler   Crawler
	Chat      sitechat.ChatService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log debug events"`
	APIKey  string `name:"api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	Model   string `env:"SITECHAT_MODEL" default:"gemini-2.0-flash" help:"Gemini model"`

	NavTimeout time.Duration `default:"60s" help:"Navigation timeout per page"`
	OpTimeout  time.Duration `default:"90s" help:"Overall timeout per page render"`
	Settle     time.Duration `default:"2s" help:"Delay after load before reading the page"`
	PoolSize   int           `default:"1" help:"Concurrent browser sessions"`
	Browser    string        `env:"SITECHAT_BROWSER" help:"Path to a Chrome binary; found or downloaded when empty"`
	MaxPages   int           `default:"25" help:"Maximum pages per crawl"`
	RPS        float64       `name:"rps" default:"1.0" help:"Requests per second per domain"`

	Website WebsiteCmd `cmd:"" help:"Manage websites"`
	User    UserCmd    `cmd:"" help:"Manage users"`
	Crawl   CrawlCmd   `cmd:"" help:"Crawl a website and wait for the result"`
	Status  StatusCmd  `cmd:"" help:"Show the crawl status of a website"`
	Ask     AskCmd     `cmd:"" help:"Ask a question about a website"`
	History HistoryCmd `cmd:"" help:"Show a user's dialogue history"`
	Purge   PurgeCmd   `cmd:"" help:"Delete all documents of a website"`
	Serve   ServeCmd   `cmd:"" help:"Run the HTTP API"`
}

// WebsiteCmd groups the website subcommands.
type WebsiteCmd struct {
	Add  WebsiteAddCmd  `cmd:"" help:"Register a website"`
	List WebsiteListCmd `cmd:"" help:"List registered websites"`
}

// WebsiteAddCmd is the "website add" subcommand.
type WebsiteAddCmd struct {
	Name  string `arg:"" help:"Website name"`
	URL   string `arg:"" help:"Seed URL"`
	Depth int    `short:"d" default:"1" help:"Crawl depth; 1 fetches the seed page only"`
}

// WebsiteListCmd is the "website list" subcommand.
type WebsiteListCmd struct{}

// UserCmd groups the user subcommands.
type UserCmd struct {
	Add UserAddCmd `cmd:"" help:"Create a user"`
}

// UserAddCmd is the "user add" subcommand.
type UserAddCmd struct {
	Name string `arg:"" help:"User name"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	WebsiteID string `arg:"" name:"website-id" help:"Website ID"`
	Recrawl   bool   `short:"r" help:"Replace existing documents"`
}

// StatusCmd is the "status" subcommand.
type StatusCmd struct {
	WebsiteID string `arg:"" name:"website-id" help:"Website ID"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	UserID    string `arg:"" name:"user-id" help:"User ID"`
	WebsiteID string `arg:"" name:"website-id" help:"Website ID"`
	Question  string `arg:"" help:"Question to ask about the website"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	UserID    string `arg:"" name:"user-id" help:"User ID"`
	WebsiteID string `name:"website" help:"Only show dialogues about this website"`
	Page      int    `default:"1" help:"Page number"`
	Limit     int    `default:"20" help:"Records per page"`
}

// PurgeCmd is the "purge" subcommand.
type PurgeCmd struct {
	WebsiteID string `arg:"" name:"website-id" help:"Website ID"`
	Force     bool   `help:"Confirm deletion"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":5000" help:"Listen address"`
}
