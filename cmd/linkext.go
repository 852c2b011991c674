/*
Copyright © 2024 Ryan Painter paintersrp@gmail.com

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Paintersrp/linkext/internal/constants"
	"github.com/Paintersrp/linkext/internal/state"
	"github.com/Paintersrp/linkext/pkg/cmd/root"
)

func Execute() {
	// Get Home Directory for locating config files
	home, err := state.GetHomeDir()
	cobra.CheckErr(err)

	// LINKEXT_VAULTDIR, LINKEXT_FIELD_NAME and friends override the workspace
	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.AutomaticEnv()

	s, err := state.NewState(home)
	cobra.CheckErr(err)

	rootCmd, err := root.NewCmdRoot(s)
	cobra.CheckErr(err)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
