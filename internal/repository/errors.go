package repository

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ErrNotFound 记录不存在
var ErrNotFound = gorm.ErrRecordNotFound

// IsNotFound 判断（可被 errors.Wrap 包装过的）不存在错误
func IsNotFound(err error) bool { return errors.Is(err, gorm.ErrRecordNotFound) }
