package utils

import (
	"encoding/json"
	"strconv"
	"time"

	"blog.com/pkg/constants"
)

// Transfer 把 jwt claims 里的数字（JSON 解出来是 float64）或字符串转成 int64，失败返回 -1
func Transfer(value interface{}) int64 {
	switch v := value.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
	case string:
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return -1
}

func ConvertStringToInt64(v string) (int64, error) {
	if res, err := strconv.ParseInt(v, 10, 64); err != nil {
		return -1, err
	} else {
		return res, nil
	}
}

// Now 当前时间，按 constants.DataFormate 格式化
func Now() string {
	return time.Now().Format(constants.DataFormate)
}

// HexMillis 毫秒时间戳的十六进制表示
func HexMillis(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 16)
}
