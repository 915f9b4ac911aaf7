package provider

import (
	"path/filepath"
	"strings"

	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/schema"
	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/store"
)

// SecuritiesProvider loads a securities master file (CSV or XLSX) and
// normalizes it into canonical records.
type SecuritiesProvider struct{}

// LoadFile reads one master-list file.
func (SecuritiesProvider) LoadFile(path string) ([]store.Security, error) {
	var (
		tbl schema.Table
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		tbl, err = readWorkbook(path)
	default:
		tbl, err = readDelimited(path)
	}
	if err != nil {
		return nil, err
	}
	return schema.NormalizeSecurities(tbl)
}
