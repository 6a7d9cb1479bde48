package main

import (
	"context"
	"fmt"

	"github.com/trezcool/lideo/core/catalog"
)

// addUniversity registers a new university through the backend.
func (cli *commandLine) addUniversity(name, address, estYear, adminName string) error {
	data := catalog.NewUniversity{
		Name:      name,
		Address:   address,
		EstYear:   estYear,
		AdminName: adminName,
	}
	if err := data.Validate(); err != nil {
		return err
	}

	uni, err := cli.universities.Create(context.Background(), data)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Created university #%d %q (%s)\n", uni.ID, uni.Name, uni.Status)
	return nil
}
