package config

import (
	"os"
	"path/filepath"
)

// Load 加载配置文件到 out：
// 1) 传入 cfgName（相对/绝对路径）则优先使用；
// 2) 否则从当前目录开始向上查找该相对路径。
func Load(cfgName string, out any) {
	curDir, err := os.Getwd()
	if err != nil {
		panic(err)
	}

	if cfgName == "" {
		panic("config file name is empty")
	}
	if filepath.IsAbs(cfgName) {
		load(cfgName, out)
		return
	}

	candidate := filepath.Join(curDir, cfgName)
	if fileExist(candidate) {
		load(candidate, out)
		return
	}

	load(findConfigUpward(curDir, cfgName), out)
}

func findConfigUpward(startDir string, relPath string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, relPath)
		if fileExist(candidate) {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic("config file not exist, searched " + relPath + " from: " + startDir)
		}
		dir = parent
	}
}
