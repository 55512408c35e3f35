package serverconfig

type Config struct {
	MySQL     MySQLConfig   `yaml:"mysql" mapstructure:"mysql"`
	MongoDB   MongoDBConfig `yaml:"mongodb" mapstructure:"mongodb"`
	Turn      TurnConfig    `yaml:"turn" mapstructure:"turn"`
	Admin     AdminConfig   `yaml:"admin" mapstructure:"admin"`
	Log       LogConfig     `yaml:"log" mapstructure:"log"`
	JWTSecret string        `yaml:"jwt_secret" mapstructure:"jwt_secret"`
}

type MySQLConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	Charset  string `yaml:"charset" mapstructure:"charset"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
}

type MongoDBConfig struct {
	URI             string `yaml:"uri" mapstructure:"uri"`
	Database        string `yaml:"database" mapstructure:"database"`
	ConnectTimeoutS int    `yaml:"connect_timeout_s" mapstructure:"connect_timeout_s"`
}

type TurnConfig struct {
	// 调度器固定间隔（秒）。每个 tick 扫描全部活跃世界。
	IntervalSeconds int `yaml:"interval_seconds" mapstructure:"interval_seconds"`
	// 即时模式下指令点恢复速率（每次扫描恢复多少点）。
	CommandPointRegen int `yaml:"command_point_regen" mapstructure:"command_point_regen"`
}

type AdminConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error...
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}
