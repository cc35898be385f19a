package almanac

import "math"

const (
	j2000        = 2451545.0
	tropicalYear = 365.2422
)

// DeltaT returns TT-UT in seconds (Espenak & Meeus polynomial fits).
func DeltaT(year float64) float64 {
	switch {
	case year < 1860:
		t := year - 1800
		return 13.72 - 0.332447*t + 0.0068612*t*t + 0.0041116*t*t*t -
			0.00037436*math.Pow(t, 4) + 0.0000121272*math.Pow(t, 5) -
			0.0000001699*math.Pow(t, 6) + 0.000000000875*math.Pow(t, 7)
	case year < 1900:
		t := year - 1860
		return 7.62 + 0.5737*t - 0.251754*t*t + 0.01680668*t*t*t -
			0.0004473624*math.Pow(t, 4) + math.Pow(t, 5)/233174
	case year < 1920:
		t := year - 1900
		return -2.79 + 1.494119*t - 0.0598939*t*t + 0.0061966*t*t*t - 0.000197*math.Pow(t, 4)
	case year < 1941:
		t := year - 1920
		return 21.20 + 0.84493*t - 0.076100*t*t + 0.0020936*t*t*t
	case year < 1961:
		t := year - 1950
		return 29.07 + 0.407*t - t*t/233 + t*t*t/2547
	case year < 1986:
		t := year - 1975
		return 45.45 + 1.067*t - t*t/260 - t*t*t/718
	case year < 2005:
		t := year - 2000
		return 63.86 + 0.3345*t - 0.060374*t*t + 0.0017275*t*t*t +
			0.000651814*math.Pow(t, 4) + 0.00002373599*math.Pow(t, 5)
	case year < 2050:
		t := year - 2000
		return 62.92 + 0.32217*t + 0.005589*t*t
	case year < 2150:
		u := (year - 1820) / 100
		return -20 + 32*u*u - 0.5628*(2150-year)
	default:
		u := (year - 1820) / 100
		return -20 + 32*u*u
	}
}

// ApparentLongitude returns the sun's apparent ecliptic longitude in degrees
// for a Julian Ephemeris Day, accurate to about 1 arcsecond between 1800 and
// 2200. It corrects the geometric VSOP87 position to FK5 and applies
// nutation in longitude and annual aberration.
func ApparentLongitude(jde float64) float64 {
	tau := (jde - j2000) / 365250
	t := tau * 10

	lon := vsopSum(earthL, tau)*180/math.Pi + 180
	r := vsopSum(earthR, tau)

	omega := radians(125.04452 - 1934.136261*t)
	sunMean := radians(280.4665 + 36000.7698*t)
	moonMean := radians(218.3165 + 481267.8813*t)
	nutation := -17.20*math.Sin(omega) - 1.32*math.Sin(2*sunMean) -
		0.23*math.Sin(2*moonMean) + 0.21*math.Sin(2*omega)

	// arcseconds: FK5, nutation, aberration
	lon += (-0.09033 + nutation - 20.4898/r) / 3600
	return normDegrees(lon)
}

// solveLongitude finds the JDE near guess at which the sun reaches lon.
func solveLongitude(lon, guess float64) float64 {
	jde := guess
	for i := 0; i < 50; i++ {
		diff := normDegrees(lon-ApparentLongitude(jde)+180) - 180
		jde += diff * tropicalYear / 360
		if math.Abs(diff) < 1e-9 {
			break
		}
	}
	return jde
}

func radians(d float64) float64 { return d * math.Pi / 180 }

func normDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}
