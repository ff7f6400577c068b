package bikram

// defaultRows holds the month lengths of BS 2000..2090 as published in the
// official Nepali calendar. The 13th value is the year total.
var defaultRows = [][13]int{
	{30, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31, 365}, // 2000
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30, 365}, // 2001
	{31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30, 365}, // 2002
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31, 366}, // 2003
	{30, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31, 365}, // 2004
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30, 365}, // 2005
	{31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30, 365}, // 2006
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31, 366}, // 2007
	{31, 31, 31, 32, 31, 31, 29, 30, 30, 29, 29, 31, 365}, // 2008
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30, 365}, // 2009
	{31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30, 365}, // 2010
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31, 366}, // 2011
	{31, 31, 31, 32, 31, 31, 29, 30, 30, 29, 30, 30, 365}, // 2012
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30, 365}, // 2013
	{31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30, 365}, // 2014
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31, 366}, // 2015
	{31, 31, 31, 32, 31, 31, 29, 30, 30, 29, 30, 30, 365}, // 2016
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30, 365}, // 2017
	{31, 32, 31, 32, 31, 30, 30, 29, 30, 29, 30, 30, 365}, // 2018
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31, 366}, // 2019
	{31, 31, 31, 32, 31, 31, 30, 29, 30, 29, 30, 30, 365}, // 2020
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30, 365}, // 2021
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 30, 365}, // 2022
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31, 366}, // 2023
	{31, 31, 31, 32, 31, 31, 30, 29, 30, 29, 30, 30, 365}, // 2024
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30, 365}, // 2025
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31, 366}, // 2026
	{30, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31, 365}, // 2027
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30, 365}, // 2028
	{31, 31, 32, 31, 32, 30, 30, 29, 30, 29, 30, 30, 365}, // 2029
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31, 366}, // 2030
	{30, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31, 365}, // 2031
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30, 365}, // 2032
	{31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30, 365}, // 2033
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31, 366}, // 2034
	{30, 32, 31, 32, 31, 31, 29, 30, 30, 29, 29, 31, 365}, // 2035
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30, 365}, // 2036
	{31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30, 365}, // 2037
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31, 366}, // 2038
	{31, 31, 31, 32, 31, 31, 29, 30, 30, 29, 30, 30, 365}, // 2039
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30, 365}, // 2040
	{31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30, 365}, // 2041
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31, 366}, // 2042
	{31, 31, 31, 32, 31, 31, 29, 30, 30, 29, 30, 30, 365}, // 2043
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30, 365}, // 2044
	{31, 32, 31, 32, 31, 30, 30, 29, 30, 29, 30, 30, 365}, // 2045
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31, 366}, // 2046
	{31, 31, 31, 32, 31, 31, 30, 29, 30, 29, 30, 30, 365}, // 2047
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30, 365}, // 2048
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 30, 365}, // 2049
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31, 366}, // 2050
	{31, 31, 31, 32, 31, 31, 30, 29, 30, 29, 30, 30, 365}, // 2051
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30, 365}, // 2052
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 30, 365}, // 2053
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31, 366}, // 2054
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30, 365}, // 2055
	{31, 31, 32, 31, 32, 30, 30, 29, 30, 29, 30, 30, 365}, // 2056
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31, 366}, // 2057
	{30, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31, 365}, // 2058
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30, 365}, // 2059
	{31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30, 365}, // 2060
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31, 366}, // 2061
	{30, 32, 31, 32, 31, 31, 29, 30, 29, 30, 29, 31, 365}, // 2062
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30, 365}, // 2063
	{31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30, 365}, // 2064
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31, 366}, // 2065
	{31, 31, 31, 32, 31, 31, 29, 30, 30, 29, 29, 31, 365}, // 2066
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30, 365}, // 2067
	{31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30, 365}, // 2068
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31, 366}, // 2069
	{31, 31, 31, 32, 31, 31, 29, 30, 30, 29, 30, 30, 365}, // 2070
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30, 365}, // 2071
	{31, 32, 31, 32, 31, 30, 30, 29, 30, 29, 30, 30, 365}, // 2072
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31, 366}, // 2073
	{31, 31, 31, 32, 31, 31, 30, 29, 30, 29, 30, 30, 365}, // 2074
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30, 365}, // 2075
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 30, 365}, // 2076
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31, 366}, // 2077
	{31, 31, 31, 32, 31, 31, 30, 29, 30, 29, 30, 30, 365}, // 2078
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30, 365}, // 2079
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 30, 365}, // 2080
	{31, 31, 32, 32, 31, 30, 30, 30, 29, 30, 30, 30, 366}, // 2081
	{30, 32, 31, 32, 31, 30, 30, 30, 29, 30, 30, 30, 365}, // 2082
	{31, 31, 32, 31, 31, 30, 30, 30, 29, 30, 30, 30, 365}, // 2083
	{31, 31, 32, 31, 31, 30, 30, 30, 29, 30, 30, 30, 365}, // 2084
	{31, 32, 31, 32, 30, 31, 30, 30, 29, 30, 30, 30, 366}, // 2085
	{30, 32, 31, 32, 31, 30, 30, 30, 29, 30, 30, 30, 365}, // 2086
	{31, 31, 32, 31, 31, 31, 30, 30, 29, 30, 30, 30, 366}, // 2087
	{30, 31, 32, 32, 30, 31, 30, 30, 29, 30, 30, 30, 365}, // 2088
	{30, 32, 31, 32, 31, 30, 30, 30, 29, 30, 30, 30, 365}, // 2089
	{30, 32, 31, 32, 31, 30, 30, 30, 29, 30, 30, 30, 365}, // 2090
}
