package log

// Config holds logger settings unmarshalled from the config file.
type Config struct {
	Level     int  `mapstructure:"level"`
	AddSource bool `mapstructure:"add_source"`
}
