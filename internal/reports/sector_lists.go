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

// Fixed category/sector lists each by-sector collections report prints
// in a constant order, ported verbatim from
// original_source/.../etl/collections/by_sector/{rtt,sales,wage,birt}.py
// (RTTCollectionsBySector.CATEGORIES, SalesCollectionsBySector.SECTORS,
// WageCollectionsBySector.SECTORS, BIRTCollectionsBySector.SECTORS).

var rttCategories = []string{
	"General Commercial (88-2)",
	"Office Buildings, Hotels, and Garages (88-3)",
	"Industrial (88-4)",
	"Other Nonresidential (88-5,88-6,77,78)",
	"Nonresidential",
	"Condominiums (88-8)",
	"Apartments (88-1)",
	"Single/Multi-family Homes (01 thur 76)",
	"Residential",
	"Unclassified",
	"Total",
}

var salesSectors = []string{
	"All Other Sectors",
	"Appliance, other electronics, retail",
	"Car and truck rental",
	"Computer and software stores, retail",
	"Construction",
	"Convenience stores, retail",
	"Department stores, retail",
	"Furniture stores retail",
	"Home centers, retail",
	"Hotels",
	"Liquor and beer stores, retail",
	"Manufacturing",
	"Motor Vehicle Sales Tax",
	"Office supplies stores, retail",
	"Other retail",
	"Pharmacies, retail",
	"Public Utilities",
	"Rentals except car and truck rentals",
	"Repair services",
	"Restaurants, bars, concessionaires and caterers",
	"Services other than repair services",
	"Subtotal",
	"Supermarkets, retail",
	"Telecommunications",
	"Total Retail",
	"Unclassified",
	"Wholesale",
}

var wageSectors = []string{
	"Construction",
	"Manufacturing",
	"Chemicals, Petroleum Refining",
	"Pharmaceuticals",
	"Transportation Equipment",
	"Food & Beverage Products",
	"Machinery, Electronic, and Other Electric Equipment",
	"Metal Manufacturing",
	"Miscellaneous Manufacturing",
	"Public Utilities",
	"Transportation and Warehousing",
	"Telecommunication",
	"Publishing, Broadcasting, and Other Information",
	"Wholesale Trade",
	"Retail Trade",
	"Banking & Credit Unions",
	"Securities / Financial Investments",
	"Insurance",
	"Real Estate, Rental and Leasing",
	"Health and Social Services",
	"Hospitals",
	"Doctors, Dentists, and Other Health Practitioners",
	"Outpatient Care Centers and Other Health Services",
	"Nursing & Personal Care Facilities",
	"Social Services",
	"Education",
	"College and Universities",
	"Elementary, Secondary Schools",
	"Other Educational Services",
	"Professional Services",
	"Legal Services",
	"Management Consulting",
	"Engineering & Architectural Services",
	"Computer",
	"Accounting, Auditing, Bookkeeping",
	"Advertising and Other Professional Services",
	"Hotels",
	"Restaurants",
	"Sport Teams",
	"Arts, Entertainment, and Other Recreation",
	"Other Sectors",
	"Membership Organizations",
	"Employment/Outsourcing Agencies",
	"Security and Investigation Services",
	"Services to Buildings",
	"Miscellaneous Sectors",
	"Government",
	"State Government (PA)",
	"City, School District, Local Quasi Govt.",
	"Federal Government",
	"Other Governments",
	"Unclassified Accounts",
}

var birtSectors = []string{
	"Construction",
	"Manufacturing",
	"Food and Beverage Products",
	"Chemicals, Pharmaceuticals & Petroleum",
	"Other Manufacturing",
	"Wholesale Trade",
	"Retail Trade",
	"Transportation and Storage",
	"Information",
	"Publishing",
	"Broadcasting (TV and Radio)",
	"Telecommunications",
	"Other Information",
	"Banking and Related Activities",
	"Financial Investment Services",
	"Insurance",
	"Real Estate",
	"Professional Services",
	"Legal Services",
	"Accounting, Tax and Payroll Services",
	"Architect and Engineering",
	"Computer Services",
	"Management and Technical Consulting",
	"Advertising",
	"Other Professional Services",
	"Business Support Services",
	"Educational Services",
	"Health and Social Services",
	"Sports",
	"Hotels and Other Accommodations",
	"Restaurants, Bars, and Other Food Services",
	"Other Personal Services",
	"All Other Sectors",
	"Unclassified",
}

