package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/user"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/ryan-gang/sendmail/internal/util"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk settings of the mailer. Every field can be
// overridden by a SENDMAIL_* environment variable.
type Config struct {
	Sender     string `json:"sender" yaml:"sender"`
	Receiver   string `json:"receiver" yaml:"receiver"`
	ReplyTo    string `json:"reply_to" yaml:"reply_to" split_words:"true"`
	Username   string `json:"username" yaml:"username"`
	Password   string `json:"password,omitempty" yaml:"password,omitempty"`
	Server     string `json:"server" yaml:"server"`
	Port       int    `json:"port" yaml:"port"`
	UseTLS     bool   `json:"use_tls" yaml:"use_tls" split_words:"true"`
	Attachment string `json:"attachment,omitempty" yaml:"attachment,omitempty"`
	Timeout    int    `json:"timeout_seconds" yaml:"timeout_seconds"`
	StorePath  string `json:"storepath" yaml:"storepath" split_words:"true"`
	LogPath    string `json:"log_path" yaml:"log_path" split_words:"true"`
}

const EnvPrefix = "SENDMAIL"
const XdgConfigHome = "XDG_CONFIG_HOME"
const ConfigFolderName = "sendmail"
const ConfigFileName = "sendmail.json"

// DotEnvFile is loaded into the environment, when present, before the
// SENDMAIL_* overlay is applied.
var DotEnvFile = ".env"

var ErrInvalidConfig = errors.New("invalid configuration")

func isGmail(mail string) bool {
	return strings.HasSuffix(strings.ToLower(mail), "@gmail.com")
}

func isYAML(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".yaml" || ext == ".yml"
}

func DefaultConfigPath() (string, error) {
	user, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("couldn't get current user: %w", err)
	}
	xdgConfigHome := os.Getenv(XdgConfigHome)
	var configFolder string
	if len(xdgConfigHome) == 0 {
		configFolder = path.Join(user.HomeDir, ".config")
		configFolder = path.Join(configFolder, ConfigFolderName)
	} else {
		configFolder = path.Join(xdgConfigHome, ConfigFolderName)
	}
	if err := os.MkdirAll(configFolder, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return path.Join(configFolder, ConfigFileName), nil
}

func exists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

func NewConfig() *Config {
	config := Config{}
	config.Server = "smtp.gmail.com"
	config.Port = 465
	config.UseTLS = true
	return &config
}

// Validate reports settings that make a connection attempt pointless.
// Addresses are checked by the mailer, not here.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Server) == "" {
		return fmt.Errorf("%w: smtp server is not set", ErrInvalidConfig)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: smtp port %d out of range", ErrInvalidConfig, c.Port)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout", ErrInvalidConfig)
	}
	return nil
}

func CreateConfig() *Config {
	util.CyanBold.Println("CONFIGURE SENDMAIL")
	return Prompt(NewConfig())
}

// Prompt asks for every setting on the console, offering the current
// value as the default.
func Prompt(configuration *Config) *Config {
	util.Cyan.Printf("Email that'll be used to send messages (eg. yourname@gmail.com) [%s] : ", configuration.Sender)
	configuration.Sender = util.ScanlineOr(configuration.Sender)
	util.Cyan.Printf("Default recipient, used when --to is not given (empty is ok) [%s] : ", configuration.Receiver)
	configuration.Receiver = util.ScanlineOr(configuration.Receiver)
	util.Cyan.Printf("Reply-To address (empty is ok) [%s] : ", configuration.ReplyTo)
	configuration.ReplyTo = util.ScanlineOr(configuration.ReplyTo)

	if isGmail(configuration.Sender) {
		configuration.Server = "smtp.gmail.com"
		configuration.Port = 465
		configuration.UseTLS = true
	} else {
		util.Cyan.Println("Sender email is different then Gmail, " +
			"can you help with SMTP server address and SMTP port for your email provider\n" +
			"Just search SMTP settings for <your email domain>.com on internet")

		util.Cyan.Printf("Enter SMTP Server Address (eg. smtp.gmail.com) [%s] : ", configuration.Server)
		configuration.Server = util.ScanlineOr(configuration.Server)
		for {
			util.Cyan.Printf("Enter SMTP port (usually 587 or 465) [%d] : ", configuration.Port)
			portStr := util.ScanlineOr(strconv.Itoa(configuration.Port))
			portInt, err := strconv.Atoi(portStr)
			if err != nil || portInt < 1 || portInt > 65535 {
				util.Red.Println("Entered port number is either invalid or not an integer, please try again")
				continue
			}
			configuration.Port = portInt
			break
		}
		util.Cyan.Printf("Connect with implicit TLS? Answer n for STARTTLS (usually y for 465, n for 587) [%t] : ", configuration.UseTLS)
		if answer := util.ScanlineTrim(); answer != "" {
			configuration.UseTLS = answer == "y" || answer == "Y" || answer == "yes"
		}
	}

	util.Cyan.Printf("SMTP username, empty means the sender address [%s] : ", configuration.Username)
	configuration.Username = util.ScanlineOr(configuration.Username)
	util.Cyan.Println("The password is read from " + EnvPrefix + "_PASSWORD (or a .env file) and is never prompted for")

	util.Cyan.Printf("File path to store composed messages on --dry-run (empty is ok) [%s] :", configuration.StorePath)
	configuration.StorePath = util.ScanlineOr(configuration.StorePath)
	util.Cyan.Printf("File path of the send log (empty disables it) [%s] :", configuration.LogPath)
	configuration.LogPath = util.ScanlineOr(configuration.LogPath)

	return configuration
}

func LoadProvider(filename string) (ConfigProvider, error) {
	cfg, err := Load(filename)
	if err != nil {
		return nil, err
	}
	return NewConfigProvider(&cfg), nil
}

// LoadFile reads the settings file on top of the defaults. A missing file
// is not an error. The environment is not consulted.
func LoadFile(filename string) (Config, error) {
	c := *NewConfig()
	if filename == "" || !exists(filename) {
		return c, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config: %w", err)
	}
	if isYAML(filename) {
		err = yaml.Unmarshal(data, &c)
	} else {
		err = json.Unmarshal(data, &c)
	}
	if err != nil {
		return Config{}, fmt.Errorf("error parsing config %s: %w", filename, err)
	}
	return c, nil
}

// Load builds the settings from defaults, the file (if it exists), a .env
// file and finally the SENDMAIL_* environment.
func Load(filename string) (Config, error) {
	c, err := LoadFile(filename)
	if err != nil {
		return Config{}, err
	}

	if DotEnvFile != "" && exists(DotEnvFile) {
		if err := godotenv.Load(DotEnvFile); err != nil {
			return Config{}, fmt.Errorf("error loading %s: %w", DotEnvFile, err)
		}
	}
	if err := envconfig.Process(EnvPrefix, &c); err != nil {
		return Config{}, fmt.Errorf("error reading environment: %w", err)
	}

	if c.Username == "" {
		c.Username = c.Sender
	}
	return c, nil
}

func Save(c Config, filename string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(filename) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "	")
	}
	if err != nil {
		return fmt.Errorf("error encoding configuration: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(filename, data, 0o600)
}
