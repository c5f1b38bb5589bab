package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"careerconnect/internal/client"
)

const usage = `usage: careerctl [-server URL] [-session FILE] <command> [flags]

commands:
  register -name NAME -email EMAIL -password PASSWORD -role jobseeker|employer
  login    -email EMAIL -password PASSWORD
  whoami
  profile  [-name NAME] [-bio BIO] [-location LOCATION] [-skills a,b,c]
  delete-resume
  logout
`

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	server := flag.String("server", envOr("CAREER_SERVER_URL", "http://localhost:5000"), "API base URL")
	sessionPath := flag.String("session", defaultSessionPath(), "session file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	session := client.NewSession(client.NewFileStore(*sessionPath), client.WithOnLogout(func() {
		fmt.Println("logged out")
	}))
	session.Load()
	api := client.NewAPI(*server, session, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, api, session, flag.Arg(0), flag.Args()[1:]); err != nil {
		logger.Fatalf("%s: %v", flag.Arg(0), err)
	}
}

func run(ctx context.Context, api *client.API, session *client.Session, cmd string, args []string) error {
	switch cmd {
	case "register":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		var req client.RegisterRequest
		fs.StringVar(&req.Name, "name", "", "full name")
		fs.StringVar(&req.Email, "email", "", "email address")
		fs.StringVar(&req.Password, "password", "", "password")
		fs.StringVar(&req.Role, "role", "jobseeker", "jobseeker or employer")
		_ = fs.Parse(args)
		user, err := api.Register(ctx, req)
		if err != nil {
			return err
		}
		printUser(user)
	case "login":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		email := fs.String("email", "", "email address")
		password := fs.String("password", "", "password")
		_ = fs.Parse(args)
		user, err := api.Login(ctx, *email, *password)
		if err != nil {
			return err
		}
		printUser(user)
	case "whoami":
		user, err := api.Me(ctx)
		if err != nil {
			return err
		}
		printUser(user)
	case "profile":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		var in client.ProfileUpdate
		var skills string
		fs.StringVar(&in.Name, "name", "", "full name")
		fs.StringVar(&in.Bio, "bio", "", "short bio")
		fs.StringVar(&in.Location, "location", "", "location")
		fs.StringVar(&skills, "skills", "", "comma separated skills")
		_ = fs.Parse(args)
		if skills != "" {
			in.Skills = strings.Split(skills, ",")
		}
		user, err := api.UpdateProfile(ctx, in)
		if err != nil {
			return err
		}
		printUser(user)
	case "delete-resume":
		if err := api.DeleteResume(ctx); err != nil {
			return err
		}
		fmt.Println("resume deleted")
	case "logout":
		if !session.IsAuthenticated() {
			fmt.Println("not logged in")
			return nil
		}
		return session.Logout()
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func printUser(u *client.User) {
	fmt.Printf("%s <%s> role=%s id=%s\n", u.Name, u.Email, u.Role, u.ID)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "careerconnect", "session.json")
}
