package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"resumeStudio/internal/auth"
	"resumeStudio/internal/config"
	"resumeStudio/internal/database"
	"resumeStudio/internal/tasks"
	"resumeStudio/internal/templates"
)

const usage = `用法:
  admin create-user --username NAME     创建账号并输出一次性随机密码
  admin thumbnails [--template ID ...]  重新生成模板缩略图（默认全部）
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	_ = godotenv.Load()

	switch os.Args[1] {
	case "create-user":
		createUser(os.Args[2:])
	case "thumbnails":
		enqueueThumbnails(os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func createUser(args []string) {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)
	username := fs.String("username", "", "用户名（必填）")
	_ = fs.Parse(args)

	u := strings.TrimSpace(*username)
	if u == "" {
		log.Fatal("missing required flag: --username")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	var existing database.User
	switch err := db.Where("username = ?", u).First(&existing).Error; {
	case err == nil:
		log.Fatalf("user %q already exists", u)
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		log.Fatalf("query user: %v", err)
	}

	password, err := generateRandomPassword(18)
	if err != nil {
		log.Fatalf("generate password: %v", err)
	}
	hashed, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}
	if err := db.Create(&database.User{Username: u, PasswordHash: hashed}).Error; err != nil {
		log.Fatalf("create user: %v", err)
	}

	fmt.Printf("用户名: %s\n", u)
	fmt.Printf("密码: %s\n", password)
	fmt.Printf("该密码仅显示一次。\n")
}

// templateIDs 允许重复传入 --template。
type templateIDs []string

func (t *templateIDs) String() string { return strings.Join(*t, ",") }

func (t *templateIDs) Set(v string) error {
	if _, ok := templates.Find(v); !ok {
		return fmt.Errorf("unknown template %q", v)
	}
	*t = append(*t, v)
	return nil
}

func enqueueThumbnails(args []string) {
	fs := flag.NewFlagSet("thumbnails", flag.ExitOnError)
	var ids templateIDs
	fs.Var(&ids, "template", "模板 id，可重复")
	_ = fs.Parse(args)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	task, err := tasks.NewTemplateThumbnailsTask(tasks.TemplateThumbnailsPayload{TemplateIDs: ids})
	if err != nil {
		log.Fatalf("build task: %v", err)
	}

	client := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.Redis.Addr()})
	defer client.Close()
	info, err := client.EnqueueContext(context.Background(), task)
	if err != nil {
		log.Fatalf("enqueue: %v", err)
	}
	fmt.Printf("已提交缩略图任务 %s\n", info.ID)
}

func generateRandomPassword(bytesLen int) (string, error) {
	buf := make([]byte, bytesLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
