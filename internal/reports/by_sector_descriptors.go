// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package reports

import "github.com/phlfinance/ledger-etl/internal/registry"

func init() {
	registry.Register(rttBySectorDescriptor())
	registry.Register(birtBySectorDescriptor())
	registry.Register(salesBySectorDescriptor())
	registry.Register(wageBySectorDescriptor())
}

// rttBySectorDescriptor describes the Realty Transfer Tax by-sector
// report, grounded on RTTCollectionsBySector: post-2019 filings keep raw
// columns [0,1,2] (num_records, total), earlier filings keep [0,7,8].
func rttBySectorDescriptor() registry.Descriptor {
	return bySectorDescriptor(
		"rtt-by-sector",
		"Realty transfer tax collections by sector",
		"collections/by-sector/rtt/FY%02d.pdf",
		rttCategories,
		[]string{"num_records", "total"},
		func(numRawCols int) []int {
			if numRawCols > 8 {
				return []int{7, 8}
			}
			return []int{0, 1}
		},
	)
}

// birtBySectorDescriptor describes the Business Income & Receipts Tax
// by-sector report, grounded on BIRTCollectionsBySector.
func birtBySectorDescriptor() registry.Descriptor {
	return bySectorDescriptor(
		"birt-by-sector",
		"Business income & receipts tax collections by sector",
		"collections/by-sector/birt/FY%02d.pdf",
		birtSectors,
		[]string{"total"},
		nil,
	)
}

// salesBySectorDescriptor describes the Sales Tax by-sector report,
// grounded on SalesCollectionsBySector.
func salesBySectorDescriptor() registry.Descriptor {
	return bySectorDescriptor(
		"sales-by-sector",
		"Sales tax collections by sector",
		"collections/by-sector/sales/FY%02d.pdf",
		salesSectors,
		[]string{"total"},
		nil,
	)
}

// wageBySectorDescriptor describes the Wage Tax by-sector report,
// grounded on WageCollectionsBySector: columns are growth_3yr and
// net_change alongside the sector total.
func wageBySectorDescriptor() registry.Descriptor {
	return bySectorDescriptor(
		"wage-by-sector",
		"Wage tax collections by sector",
		"collections/by-sector/wage/FY%02d.pdf",
		wageSectors,
		[]string{"total", "growth_3yr", "net_change"},
		nil,
	)
}
